package repository

import (
	"testing"
	"time"

	"github.com/stemsi/roster-mahasiswa/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)

func newTestRepo() *RosterRepository {
	return NewRosterRepository(func() time.Time { return fixedNow })
}

func student(name string, npm int64, gpa float64) *model.Student {
	return &model.Student{
		Name:           name,
		NPM:            npm,
		Gender:         model.GenderFemale,
		BirthInfo:      "Denpasar, 1 Januari 2004",
		Address:        "Jl. Gatot Subroto No. 12",
		EnrollmentYear: 2022,
		GPA:            gpa,
	}
}

func TestCreateAssignsIDAndTimestamp(t *testing.T) {
	repo := newTestRepo()

	a := student("Ayu", 12345678, 3.8)
	b := student("Budi", 87654321, 2.5)
	require.NoError(t, repo.Create(a))
	require.NoError(t, repo.Create(b))

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
	assert.Equal(t, fixedNow, a.CreatedAt)

	list := repo.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Ayu", list[0].Name)
	assert.Equal(t, "Budi", list[1].Name)
}

func TestCreateRejectsDuplicateNPM(t *testing.T) {
	repo := newTestRepo()
	require.NoError(t, repo.Create(student("Ayu", 12345678, 3.8)))

	err := repo.Create(student("Ayu Kembar", 12345678, 2.0))

	assert.ErrorIs(t, err, ErrDuplicateNPM)
	assert.Equal(t, 1, repo.Count())
	assert.Equal(t, "Ayu", repo.List()[0].Name)
}

func TestIDsAreNotReusedAfterDelete(t *testing.T) {
	repo := newTestRepo()
	a := student("Ayu", 12345678, 3.8)
	require.NoError(t, repo.Create(a))
	require.True(t, repo.Delete(a.ID))

	b := student("Budi", 87654321, 2.5)
	require.NoError(t, repo.Create(b))
	assert.Equal(t, int64(2), b.ID)
}

func TestDelete(t *testing.T) {
	repo := newTestRepo()
	for i, name := range []string{"Ayu", "Budi", "Citra"} {
		require.NoError(t, repo.Create(student(name, int64(10000000+i), 3.0)))
	}

	assert.False(t, repo.Delete(99))
	assert.Equal(t, 3, repo.Count())

	assert.True(t, repo.Delete(2))
	list := repo.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Ayu", list[0].Name)
	assert.Equal(t, "Citra", list[1].Name)
	assert.Equal(t, int64(3), list[1].ID)
}

func TestDeleteAll(t *testing.T) {
	repo := newTestRepo()
	assert.Equal(t, 0, repo.DeleteAll())

	require.NoError(t, repo.Create(student("Ayu", 12345678, 3.8)))
	require.NoError(t, repo.Create(student("Budi", 87654321, 2.5)))

	assert.Equal(t, 2, repo.DeleteAll())
	assert.Empty(t, repo.List())
	assert.Equal(t, model.RosterStats{}, repo.Stats())
}

func TestStatsAndSnapshot(t *testing.T) {
	repo := newTestRepo()
	require.NoError(t, repo.Create(student("Ayu", 12345678, 3.8)))
	require.NoError(t, repo.Create(student("Budi", 87654321, 2.5)))
	require.NoError(t, repo.Create(student("Citra", 11223344, 3.75)))

	assert.Equal(t, model.RosterStats{Total: 3, Cumlaude: 2}, repo.Stats())

	snap := repo.Snapshot()
	assert.Len(t, snap.Students, 3)
	assert.Equal(t, repo.Stats(), snap.Stats)
}

func TestListReturnsCopy(t *testing.T) {
	repo := newTestRepo()
	require.NoError(t, repo.Create(student("Ayu", 12345678, 3.8)))

	list := repo.List()
	list[0].Name = "Diubah"

	assert.Equal(t, "Ayu", repo.List()[0].Name)
}
