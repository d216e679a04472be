package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"crmapi/internal/apperr"
	"crmapi/internal/model"
	"crmapi/internal/query"
	"crmapi/internal/repository"
)

// clientColumns is the full column list, qualified for the agent join.
const clientColumns = `client.id, client.firstname, client.lastname, client.prefix,
	client.email_address, client.phone_number, client.contact_number_whatsapp,
	client.email_internal_address, client.email_internal_address_password,
	client.forward_email_address_clicker, client.location_sms_receive, client.socials,
	client.street, client.city, client.zipcode, client.country,
	client.employed, client.job_title, client.average_salary,
	client.start_date, client.end_date, client.agent_id, client.client_responsive,
	client.created_at`

var clientSortable = []string{"firstname", "lastname", "email_address", "created_at", "country", "city"}

// ClientPostgres is the PostgreSQL implementation of repository.ClientRepository.
type ClientPostgres struct {
	db *sql.DB
}

func NewClientPostgres(db *sql.DB) *ClientPostgres {
	return &ClientPostgres{db: db}
}

var _ repository.ClientRepository = (*ClientPostgres)(nil)

type scanner interface {
	Scan(dest ...any) error
}

func scanClient(row scanner, withAgentNames bool) (*model.Client, error) {
	var c model.Client
	var agentFirst, agentLast sql.NullString

	dest := []any{
		&c.ID, &c.Firstname, &c.Lastname, &c.Prefix,
		&c.EmailAddress, &c.PhoneNumber, &c.ContactNumberWhatsapp,
		&c.EmailInternalAddress, &c.EmailInternalAddressPassword,
		&c.ForwardEmailAddressClicker, &c.LocationSMSReceive, &c.Socials,
		&c.Street, &c.City, &c.Zipcode, &c.Country,
		&c.Employed, &c.JobTitle, &c.AverageSalary,
		&c.StartDate, &c.EndDate, &c.AgentID, &c.ClientResponsive,
		&c.CreatedAt,
	}
	if withAgentNames {
		dest = append(dest, &agentFirst, &agentLast)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if withAgentNames && agentFirst.Valid {
		c.Agent = &model.AgentRef{Firstname: agentFirst.String, Lastname: agentLast.String}
	}
	return &c, nil
}

// List returns one page of clients with the agent name reference joined
// in, plus the total count for the same filter.
func (r *ClientPostgres) List(ctx context.Context, q repository.ClientQuery) (*repository.PageResult[model.Client], error) {
	var f query.Filter
	f.Search(q.Search, "client.firstname", "client.lastname", "client.email_address").
		Eq("client.agent_id", q.AgentID)
	where, args := f.Clause()

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM client"+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	sort := query.NewSort(q.SortBy, q.SortOrder, clientSortable, query.Sort{Column: "lastname"})
	qList := "SELECT " + clientColumns + `, agent.firstname, agent.lastname
		FROM client
		LEFT JOIN agent ON agent.id = client.agent_id` +
		where +
		" ORDER BY client." + sort.Column + sort.Dir() +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", f.NextArg(), f.NextArg()+1)
	args = append(args, q.Page.Limit, q.Page.Offset())

	rows, err := r.db.QueryContext(ctx, qList, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows, true)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Client]{Items: items, Total: total}, nil
}

// FindByID returns one client with the full agent reference (id, names,
// is_active).
func (r *ClientPostgres) FindByID(ctx context.Context, id string) (*model.Client, error) {
	q := "SELECT " + clientColumns + `, agent.id, agent.firstname, agent.lastname, agent.is_active
		FROM client
		LEFT JOIN agent ON agent.id = client.agent_id
		WHERE client.id = $1`

	var c model.Client
	var agentID, agentFirst, agentLast sql.NullString
	var agentActive sql.NullBool

	dest := []any{
		&c.ID, &c.Firstname, &c.Lastname, &c.Prefix,
		&c.EmailAddress, &c.PhoneNumber, &c.ContactNumberWhatsapp,
		&c.EmailInternalAddress, &c.EmailInternalAddressPassword,
		&c.ForwardEmailAddressClicker, &c.LocationSMSReceive, &c.Socials,
		&c.Street, &c.City, &c.Zipcode, &c.Country,
		&c.Employed, &c.JobTitle, &c.AverageSalary,
		&c.StartDate, &c.EndDate, &c.AgentID, &c.ClientResponsive,
		&c.CreatedAt,
		&agentID, &agentFirst, &agentLast, &agentActive,
	}
	if err := r.db.QueryRowContext(ctx, q, id).Scan(dest...); err != nil {
		return nil, err
	}
	if agentID.Valid {
		active := agentActive.Bool
		c.Agent = &model.AgentRef{
			ID:        agentID.String,
			Firstname: agentFirst.String,
			Lastname:  agentLast.String,
			IsActive:  &active,
		}
	}
	return &c, nil
}

func (r *ClientPostgres) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM client WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

// FindIDByEmail does the exact-match duplicate lookup used by the
// conflict check. excludeID carves out the row being updated.
func (r *ClientPostgres) FindIDByEmail(ctx context.Context, email, excludeID string) (string, error) {
	q := "SELECT id FROM client WHERE email_address = $1"
	args := []any{email}
	if excludeID != "" {
		q += " AND id <> $2"
		args = append(args, excludeID)
	}
	var id string
	if err := r.db.QueryRowContext(ctx, q+" LIMIT 1", args...).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

// Create inserts a client row. A unique-constraint violation on
// email_address is translated to a conflict error here: the database is
// the authority that closes the check-then-insert race.
func (r *ClientPostgres) Create(ctx context.Context, c *model.Client) (*model.Client, error) {
	const q = `
		INSERT INTO client (
			firstname, lastname, prefix, email_address, phone_number,
			contact_number_whatsapp, email_internal_address, email_internal_address_password,
			forward_email_address_clicker, location_sms_receive, socials,
			street, city, zipcode, country, employed, job_title, average_salary,
			start_date, end_date, agent_id, client_responsive
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING ` + clientColumns
	row := r.db.QueryRowContext(ctx, q,
		c.Firstname, c.Lastname, c.Prefix, c.EmailAddress, c.PhoneNumber,
		c.ContactNumberWhatsapp, c.EmailInternalAddress, c.EmailInternalAddressPassword,
		c.ForwardEmailAddressClicker, c.LocationSMSReceive, c.Socials,
		c.Street, c.City, c.Zipcode, c.Country, c.Employed, c.JobTitle, c.AverageSalary,
		c.StartDate, c.EndDate, c.AgentID, c.ClientResponsive,
	)
	out, err := scanClient(row, false)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Wrap(apperr.KindConflict, "A client with this email already exists", err)
		}
		return nil, err
	}
	return out, nil
}

// Update builds a SET clause from the non-nil fields of upd and returns
// the updated row. sql.ErrNoRows signals a missing client.
func (r *ClientPostgres) Update(ctx context.Context, id string, upd model.ClientUpdate) (*model.Client, error) {
	var set []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if upd.Firstname != nil {
		add("firstname", *upd.Firstname)
	}
	if upd.Lastname != nil {
		add("lastname", *upd.Lastname)
	}
	if upd.Prefix != nil {
		add("prefix", *upd.Prefix)
	}
	if upd.EmailAddress != nil {
		add("email_address", *upd.EmailAddress)
	}
	if upd.PhoneNumber != nil {
		add("phone_number", *upd.PhoneNumber)
	}
	if upd.ContactNumberWhatsapp != nil {
		add("contact_number_whatsapp", *upd.ContactNumberWhatsapp)
	}
	if upd.EmailInternalAddress != nil {
		add("email_internal_address", *upd.EmailInternalAddress)
	}
	if upd.EmailInternalAddressPassword != nil {
		add("email_internal_address_password", *upd.EmailInternalAddressPassword)
	}
	if upd.ForwardEmailAddressClicker != nil {
		add("forward_email_address_clicker", *upd.ForwardEmailAddressClicker)
	}
	if upd.LocationSMSReceive != nil {
		add("location_sms_receive", *upd.LocationSMSReceive)
	}
	if upd.Socials != nil {
		add("socials", *upd.Socials)
	}
	if upd.Street != nil {
		add("street", *upd.Street)
	}
	if upd.City != nil {
		add("city", *upd.City)
	}
	if upd.Zipcode != nil {
		add("zipcode", *upd.Zipcode)
	}
	if upd.Country != nil {
		add("country", *upd.Country)
	}
	if upd.Employed != nil {
		add("employed", *upd.Employed)
	}
	if upd.JobTitle != nil {
		add("job_title", *upd.JobTitle)
	}
	if upd.AverageSalary != nil {
		add("average_salary", *upd.AverageSalary)
	}
	if upd.StartDate != nil {
		add("start_date", *upd.StartDate)
	}
	if upd.EndDate != nil {
		add("end_date", *upd.EndDate)
	}
	if upd.AgentID != nil {
		add("agent_id", *upd.AgentID)
	}
	if upd.ClientResponsive != nil {
		add("client_responsive", *upd.ClientResponsive)
	}

	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	args = append(args, id)
	q := "UPDATE client SET " + strings.Join(set, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING ", len(args)) + clientColumns
	out, err := scanClient(r.db.QueryRowContext(ctx, q, args...), false)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Wrap(apperr.KindConflict, "A client with this email already exists", err)
		}
		return nil, err
	}
	return out, nil
}

// Delete removes a client row. No error when the row is already gone.
func (r *ClientPostgres) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM client WHERE id = $1", id)
	return err
}

// isUniqueViolation reports SQLSTATE 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
