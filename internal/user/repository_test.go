package user_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"

	"github.com/vasiliy-maslov/shop-service/internal/user"
)

var testDB *pgxpool.Pool

func TestMain(m *testing.M) {
	dbHost := envOrDefault("DB_HOST_TEST", "localhost")
	dbPort := envOrDefault("DB_PORT_TEST", "5432")
	dbUser := envOrDefault("DB_USER_TEST", "postgres")
	dbPassword := envOrDefault("DB_PASSWORD_TEST", "postgres")
	dbName := envOrDefault("DB_NAME_TEST", "shop_db_test")
	dbSSLMode := envOrDefault("DB_SSLMODE_TEST", "disable")

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode)

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		log.Error().Err(err).Msg("Failed to parse test database connstr, repository tests will be skipped")
		os.Exit(m.Run())
	}
	poolConfig.MaxConns = 5

	connectCtx, connectCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer connectCancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err == nil {
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if pingErr := pool.Ping(pingCtx); pingErr != nil {
			pool.Close()
			log.Warn().Err(pingErr).Msg("Test database not reachable, repository tests will be skipped")
		} else {
			testDB = pool
			log.Info().Msg("Test database connection established")
		}
		pingCancel()
	} else {
		log.Warn().Err(err).Msg("Test database not reachable, repository tests will be skipped")
	}

	exitCode := m.Run()

	if testDB != nil {
		testDB.Close()
	}
	os.Exit(exitCode)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func requireTestDB(tb testing.TB) {
	tb.Helper()
	if testDB == nil {
		tb.Skip("test database is not available")
	}
}

func truncateUsersTable(tb testing.TB, pool *pgxpool.Pool) {
	tb.Helper()
	_, err := pool.Exec(context.Background(), "TRUNCATE TABLE users CASCADE")
	require.NoError(tb, err, "failed to truncate users table")
}

func newTestUser(email string) *user.User {
	return &user.User{
		ID:           uuid.Must(uuid.NewV4()),
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: "hashed_password",
	}
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	requireTestDB(t)
	repo := user.NewRepository(testDB)

	t.Cleanup(func() {
		truncateUsersTable(t, testDB)
	})

	testUser := newTestUser("test.create@example.com")

	createdID, err := repo.Create(context.Background(), testUser)
	require.NoError(t, err)
	require.Equal(t, testUser.ID, createdID)

	byID, err := repo.GetByID(context.Background(), createdID)
	require.NoError(t, err)
	require.Equal(t, testUser.Email, byID.Email)
	require.Equal(t, testUser.PasswordHash, byID.PasswordHash)

	byEmail, err := repo.GetByEmail(context.Background(), testUser.Email)
	require.NoError(t, err)
	require.Equal(t, createdID, byEmail.ID)
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	requireTestDB(t)
	repo := user.NewRepository(testDB)

	t.Cleanup(func() {
		truncateUsersTable(t, testDB)
	})

	first := newTestUser("duplicate@example.com")
	_, err := repo.Create(context.Background(), first)
	require.NoError(t, err)

	second := newTestUser("duplicate@example.com")
	_, err = repo.Create(context.Background(), second)
	require.Error(t, err)
	require.ErrorIs(t, err, user.ErrEmailExists)

	// Ровно одна строка для этого email.
	var count int
	err = testDB.QueryRow(context.Background(),
		"SELECT count(*) FROM users WHERE email = $1", "duplicate@example.com").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	requireTestDB(t)
	repo := user.NewRepository(testDB)

	missingID := uuid.Must(uuid.NewV4())

	foundUser, err := repo.GetByID(context.Background(), missingID)
	require.Error(t, err)
	require.ErrorIs(t, err, user.ErrNotFound)
	require.Nil(t, foundUser)
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	requireTestDB(t)
	repo := user.NewRepository(testDB)

	foundUser, err := repo.GetByEmail(context.Background(), "missing@example.com")
	require.Error(t, err)
	require.ErrorIs(t, err, user.ErrNotFound)
	require.Nil(t, foundUser)
}
