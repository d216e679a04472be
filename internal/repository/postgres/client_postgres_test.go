package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmapi/internal/apperr"
	"crmapi/internal/model"
	"crmapi/internal/query"
	"crmapi/internal/repository"
)

var clientRowColumns = []string{
	"id", "firstname", "lastname", "prefix",
	"email_address", "phone_number", "contact_number_whatsapp",
	"email_internal_address", "email_internal_address_password",
	"forward_email_address_clicker", "location_sms_receive", "socials",
	"street", "city", "zipcode", "country",
	"employed", "job_title", "average_salary",
	"start_date", "end_date", "agent_id", "client_responsive",
	"created_at",
}

// clientRow builds one full client row with the optional columns NULL.
func clientRow(rows *sqlmock.Rows, id, first, last string, created time.Time) *sqlmock.Rows {
	return rows.AddRow(
		id, first, last, nil,
		nil, nil, nil,
		nil, nil,
		nil, nil, nil,
		nil, nil, nil, nil,
		nil, nil, nil,
		nil, nil, nil, nil,
		created,
	)
}

func TestClientPostgresList(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewClientPostgres(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM client WHERE \(client\.firstname ILIKE \$1 OR client\.lastname ILIKE \$1 OR client\.email_address ILIKE \$1\)`).
		WithArgs("%john%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	listRows := sqlmock.NewRows(append(append([]string{}, clientRowColumns...), "agent_firstname", "agent_lastname")).
		AddRow(
			"c1", "John", "Doe", nil,
			nil, nil, nil,
			nil, nil,
			nil, nil, nil,
			nil, nil, nil, nil,
			nil, nil, nil,
			nil, nil, nil, nil,
			now,
			"Eva", "Bakker",
		)
	mock.ExpectQuery(`SELECT (.+) FROM client\s+LEFT JOIN agent ON agent\.id = client\.agent_id WHERE (.+) ORDER BY client\.lastname ASC LIMIT \$2 OFFSET \$3`).
		WithArgs("%john%", 5, 5).
		WillReturnRows(listRows)

	res, err := repo.List(context.Background(), repository.ClientQuery{
		Search:    "john",
		SortBy:    "lastname",
		SortOrder: "asc",
		Page:      query.NewPage(2, 5),
	})
	require.NoError(t, err)
	assert.Equal(t, 12, res.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "c1", res.Items[0].ID)
	require.NotNil(t, res.Items[0].Agent)
	assert.Equal(t, "Eva", res.Items[0].Agent.Firstname)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientPostgresListRejectsUnknownSortColumn(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewClientPostgres(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM client`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	// Injection attempt falls back to the default sort column.
	mock.ExpectQuery(`ORDER BY client\.lastname ASC`).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(append(append([]string{}, clientRowColumns...), "af", "al")))

	_, err = repo.List(context.Background(), repository.ClientQuery{
		SortBy: "lastname; DROP TABLE client--",
		Page:   query.NewPage(1, 10),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientPostgresFindIDByEmail(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewClientPostgres(db)

	t.Run("match", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id FROM client WHERE email_address = \$1 LIMIT 1`).
			WithArgs("j@x.nl").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("c1"))

		id, err := repo.FindIDByEmail(context.Background(), "j@x.nl", "")
		require.NoError(t, err)
		assert.Equal(t, "c1", id)
	})

	t.Run("excludes own row", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id FROM client WHERE email_address = \$1 AND id <> \$2 LIMIT 1`).
			WithArgs("j@x.nl", "c1").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindIDByEmail(context.Background(), "j@x.nl", "c1")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientPostgresCreate(t *testing.T) {
	t.Run("returns the stored row", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		repo := NewClientPostgres(db)
		rows := clientRow(sqlmock.NewRows(clientRowColumns), "c1", "John", "Doe", time.Now())

		mock.ExpectQuery(`INSERT INTO client`).WillReturnRows(rows)

		out, err := repo.Create(context.Background(), &model.Client{Firstname: "John", Lastname: "Doe"})
		require.NoError(t, err)
		assert.Equal(t, "c1", out.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation becomes a conflict", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		repo := NewClientPostgres(db)

		mock.ExpectQuery(`INSERT INTO client`).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "client_email_address_key"})

		_, err = repo.Create(context.Background(), &model.Client{Firstname: "John", Lastname: "Doe"})
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
		assert.Equal(t, "A client with this email already exists", apperr.MessageOf(err))
	})
}

func TestClientPostgresUpdate(t *testing.T) {
	t.Run("sets only supplied columns", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		repo := NewClientPostgres(db)
		city := "Amsterdam"

		mock.ExpectQuery(`UPDATE client SET city = \$1 WHERE id = \$2 RETURNING`).
			WithArgs("Amsterdam", "c1").
			WillReturnRows(clientRow(sqlmock.NewRows(clientRowColumns), "c1", "John", "Doe", time.Now()))

		out, err := repo.Update(context.Background(), "c1", model.ClientUpdate{City: &city})
		require.NoError(t, err)
		assert.Equal(t, "c1", out.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty update reads the current row", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		repo := NewClientPostgres(db)
		rows := sqlmock.NewRows(append(append([]string{}, clientRowColumns...), "agent_id2", "agent_firstname", "agent_lastname", "agent_is_active")).
			AddRow(
				"c1", "John", "Doe", nil,
				nil, nil, nil,
				nil, nil,
				nil, nil, nil,
				nil, nil, nil, nil,
				nil, nil, nil,
				nil, nil, nil, nil,
				time.Now(),
				nil, nil, nil, nil,
			)

		mock.ExpectQuery(`SELECT (.+) FROM client\s+LEFT JOIN agent ON agent\.id = client\.agent_id\s+WHERE client\.id = \$1`).
			WithArgs("c1").
			WillReturnRows(rows)

		out, err := repo.Update(context.Background(), "c1", model.ClientUpdate{})
		require.NoError(t, err)
		assert.Equal(t, "c1", out.ID)
		assert.Nil(t, out.Agent)
	})
}

func TestClientPostgresDelete(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewClientPostgres(db)

	mock.ExpectExec(`DELETE FROM client WHERE id = \$1`).
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "c1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientPostgresExists(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := NewClientPostgres(db)

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM client WHERE id = \$1\)`).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.Exists(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, ok)
}
