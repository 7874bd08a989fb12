package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/stemsi/roster-mahasiswa/internal/config"
	"github.com/stemsi/roster-mahasiswa/internal/logger"
	"github.com/stemsi/roster-mahasiswa/internal/model"
)

// seed-roster fills a running server with sample students through the JSON API.
// The roster lives in server memory, so there is nothing to write to directly.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.ServerPort
	}
	endpoint := strings.TrimRight(baseURL, "/") + "/api/v1/students"

	fmt.Println("=== Seeding 20 Students ===")

	names := []string{
		"Budi Santoso", "Siti Aminah", "Andi Pratama", "Rina Wati", "Joko Susilo",
		"Ayu Lestari", "Dodi Kusuma", "Eka Putri", "Fahri Hamzah", "Gita Savitri",
		"Hendra Gunawan", "Ika Sari", "Jamal Mirdad", "Kiki Fatmala", "Lukman Hakim",
		"Maya Septiana", "Nanda Pratama", "Oki Setiana", "Putri Dian", "Qori Maharani",
	}
	cities := []string{"Denpasar", "Singaraja", "Tabanan", "Gianyar", "Bangli"}

	client := &http.Client{Timeout: 10 * time.Second}
	successCount := 0
	for i, name := range names {
		form := model.StudentForm{
			Name:           name,
			NPM:            fmt.Sprintf("2024%04d", i+1),
			Gender:         string(model.GenderMale),
			BirthInfo:      fmt.Sprintf("%s, %d Januari 2004", cities[i%len(cities)], i+1),
			Address:        fmt.Sprintf("Jl. Pendidikan No. %d, %s", i+10, cities[i%len(cities)]),
			EnrollmentYear: fmt.Sprintf("%d", 2020+i%5),
			// 1.50..3.97: every predicate band gets at least two students.
			GPA: fmt.Sprintf("%.2f", 1.5+float64(i)*0.13),
		}

		// Alternate gender like the sample data set.
		if i%2 != 0 {
			form.Gender = string(model.GenderFemale)
		}

		status, err := post(ctx, client, endpoint, form)
		switch {
		case err != nil:
			log.Fatal().Err(err).Str("endpoint", endpoint).Msg("Server unreachable")
		case status == http.StatusCreated:
			successCount++
			if (i+1)%5 == 0 {
				fmt.Printf("Created %d students...\n", i+1)
			}
		default:
			fmt.Printf("Error creating student %s (NPM: %s): status %d\n", form.Name, form.NPM, status)
		}
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d students.\n", successCount, len(names))
}

func post(ctx context.Context, client *http.Client, endpoint string, form model.StudentForm) (int, error) {
	body, err := json.Marshal(form)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}
