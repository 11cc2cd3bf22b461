package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarchuk/salonio/models"
)

func setupAppointmentTest(t *testing.T) (AppointmentRepository, *models.User, *models.Client) {
	t.Helper()

	db := testDB(t)
	master := createTestUser(t, NewSQLiteUserRepo(db), "master@salon.ru", models.RoleMaster)
	client := createTestClient(t, NewSQLiteClientRepo(db), "Анна Иванова", "+7 900 111-22-33")

	return NewSQLiteAppointmentRepo(db), master, client
}

func createScheduled(t *testing.T, repo AppointmentRepository, masterID, clientID, serviceID string, startsAt time.Time) *models.Appointment {
	t.Helper()

	appt := &models.Appointment{
		ClientID:  clientID,
		MasterID:  masterID,
		ServiceID: serviceID,
		BranchID:  seededBranchID,
		StartsAt:  startsAt,
		Status:    models.AppointmentScheduled,
	}
	require.NoError(t, repo.Create(context.Background(), appt))
	return appt
}

func TestAppointmentRepo_CreateAndGet(t *testing.T) {
	repo, master, client := setupAppointmentTest(t)
	ctx := context.Background()

	startsAt := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	created := createScheduled(t, repo, master.ID, client.ID, seededServiceID, startsAt)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, client.ID, got.ClientID)
	assert.True(t, got.StartsAt.Equal(startsAt))

	// Denormalize alanlar JOIN'den gelir
	assert.Equal(t, "Анна Иванова", got.ClientName)
	assert.Equal(t, master.Name, got.MasterName)
	assert.Equal(t, "Женская стрижка", got.ServiceName)
	assert.Equal(t, 60, got.DurationMin)
}

func TestAppointmentRepo_CountOverlapping(t *testing.T) {
	repo, master, client := setupAppointmentTest(t)
	ctx := context.Background()

	// 60 dakikalık hizmet: mevcut randevu [10:00, 11:00)
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	existing := createScheduled(t, repo, master.ID, client.ID, seededServiceID, base)

	cases := []struct {
		name     string
		start    time.Time
		duration time.Duration
		want     int
	}{
		{"tam çakışma", base, time.Hour, 1},
		{"ortadan başlayan", base.Add(30 * time.Minute), time.Hour, 1},
		{"mevcut aralığı kapsayan", base.Add(-30 * time.Minute), 2 * time.Hour, 1},
		{"sırt sırta sonra", base.Add(time.Hour), time.Hour, 0},
		{"sırt sırta önce", base.Add(-30 * time.Minute), 30 * time.Minute, 0},
		{"tamamen ayrı", base.Add(3 * time.Hour), time.Hour, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			count, err := repo.CountOverlapping(ctx, master.ID, tc.start, tc.start.Add(tc.duration), "")
			require.NoError(t, err)
			assert.Equal(t, tc.want, count)
		})
	}

	// Güncelleme senaryosu: kayıt kendisiyle çakışmaz
	count, err := repo.CountOverlapping(ctx, master.ID, base, base.Add(time.Hour), existing.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAppointmentRepo_CancelledDoesNotBlock(t *testing.T) {
	repo, master, client := setupAppointmentTest(t)
	ctx := context.Background()

	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	appt := createScheduled(t, repo, master.ID, client.ID, seededServiceID, base)

	appt.Status = models.AppointmentCancelled
	require.NoError(t, repo.Update(ctx, appt))

	count, err := repo.CountOverlapping(ctx, master.ID, base, base.Add(time.Hour), "")
	require.NoError(t, err)
	assert.Equal(t, 0, count, "cancelled appointment must free the slot")
}

func TestAppointmentRepo_OtherMasterDoesNotOverlap(t *testing.T) {
	db := testDB(t)
	repo := NewSQLiteAppointmentRepo(db)
	users := NewSQLiteUserRepo(db)
	client := createTestClient(t, NewSQLiteClientRepo(db), "Анна", "+7 900 111-22-33")

	master1 := createTestUser(t, users, "master1@salon.ru", models.RoleMaster)
	master2 := createTestUser(t, users, "master2@salon.ru", models.RoleMaster)

	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	createScheduled(t, repo, master1.ID, client.ID, seededServiceID, base)

	count, err := repo.CountOverlapping(context.Background(), master2.ID, base, base.Add(time.Hour), "")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAppointmentRepo_ListFilters(t *testing.T) {
	repo, master, client := setupAppointmentTest(t)
	ctx := context.Background()

	day1 := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	createScheduled(t, repo, master.ID, client.ID, seededServiceID, day1)
	createScheduled(t, repo, master.ID, client.ID, seededServiceID30, day1.Add(2*time.Hour))
	createScheduled(t, repo, master.ID, client.ID, seededServiceID, day2)

	filterDay := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	got, err := repo.List(ctx, models.AppointmentFilter{Date: &filterDay})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.List(ctx, models.AppointmentFilter{MasterID: master.ID})
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = repo.List(ctx, models.AppointmentFilter{MasterID: "no-such-master"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAppointmentRepo_DeleteMissing(t *testing.T) {
	repo, _, _ := setupAppointmentTest(t)

	err := repo.Delete(context.Background(), "no-such-id")
	assert.Error(t, err)
}
