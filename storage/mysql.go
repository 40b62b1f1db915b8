package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	currency "github.com/malusev998/currency-agency"
)

type mysqlStorage struct {
	ctx         context.Context
	db          *sql.DB
	agencyTable string
	rateTable   string
}

const (
	createAgencyTable = `CREATE TABLE IF NOT EXISTS %s(
	id CHAR(36) NOT NULL PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	address VARCHAR(255) NOT NULL,
	country VARCHAR(255) NOT NULL,
	base_currency VARCHAR(16) NOT NULL
);`

	createRateTable = `CREATE TABLE IF NOT EXISTS %s(
	id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
	agency_id CHAR(36) NOT NULL,
	currency_from VARCHAR(16) NOT NULL,
	currency_to VARCHAR(16) NOT NULL,
	amount VARCHAR(64) NOT NULL,
	created_at DATETIME NOT NULL,
	UNIQUE KEY unique_rate(agency_id, currency_from, currency_to, amount, created_at),
	FOREIGN KEY(agency_id) REFERENCES %s(id) ON DELETE CASCADE
);`

	upsertAgency = "INSERT INTO %s(id, name, address, country, base_currency) VALUES (?,?,?,?,?) ON DUPLICATE KEY UPDATE name = VALUES(name), address = VALUES(address), country = VALUES(country);"
	insertRate   = "INSERT IGNORE INTO %s(agency_id, currency_from, currency_to, amount, created_at) VALUES (?,?,?,?,?);"
	selectAgency = "SELECT id, name, address, country, base_currency FROM %s WHERE id = ? LIMIT 1;"
	selectRates  = "SELECT currency_from, currency_to, amount, created_at FROM %s WHERE agency_id = ? ORDER BY id;"
	dropTable    = "DROP TABLE IF EXISTS %s;"
)

// NewMySQLStorage opens a connection from config.ConnectionString. Agencies
// live in <TableName>_agencies and their rates in <TableName>_rates.
func NewMySQLStorage(config MySQLConfig) (currency.Storage, error) {
	db, err := sql.Open("mysql", config.ConnectionString)

	if err != nil {
		return nil, err
	}

	return NewSQLStorage(config.Cxt, db, config.TableName, config.Migrate)
}

func NewSQLStorage(ctx context.Context, db *sql.DB, tableName string, migrate bool) (currency.Storage, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	storage := mysqlStorage{
		ctx:         ctx,
		db:          db,
		agencyTable: tableName + "_agencies",
		rateTable:   tableName + "_rates",
	}

	if migrate {
		if err := storage.Migrate(); err != nil {
			return nil, err
		}
	}

	return storage, nil
}

func (m mysqlStorage) Migrate() error {
	if _, err := m.db.ExecContext(m.ctx, fmt.Sprintf(createAgencyTable, m.agencyTable)); err != nil {
		return err
	}

	_, err := m.db.ExecContext(m.ctx, fmt.Sprintf(createRateTable, m.rateTable, m.agencyTable))

	return err
}

func (m mysqlStorage) Store(agency *currency.Agency) error {
	tx, err := m.db.BeginTx(m.ctx, nil)

	if err != nil {
		return err
	}

	_, err = tx.ExecContext(
		m.ctx,
		fmt.Sprintf(upsertAgency, m.agencyTable),
		agency.ID().String(),
		agency.Name(),
		agency.Address(),
		agency.Country(),
		agency.BaseCurrency().Code(),
	)

	if err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(m.ctx, fmt.Sprintf(insertRate, m.rateTable))

	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, r := range toRawRates(agency.Rates(), MySQLTimeFormat) {
		if _, err := stmt.ExecContext(m.ctx, agency.ID().String(), r.From, r.To, r.Amount, r.Timestamp); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (m mysqlStorage) Get(id uuid.UUID) (*currency.Agency, error) {
	var agencyID, name, address, country, base string

	row := m.db.QueryRowContext(m.ctx, fmt.Sprintf(selectAgency, m.agencyTable), id.String())

	if err := row.Scan(&agencyID, &name, &address, &country, &base); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAgencyNotFound
		}

		return nil, err
	}

	rows, err := m.db.QueryContext(m.ctx, fmt.Sprintf(selectRates, m.rateTable), id.String())

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	raw := make([]rawRate, 0)

	for rows.Next() {
		var r rawRate

		if err := rows.Scan(&r.From, &r.To, &r.Amount, &r.Timestamp); err != nil {
			return nil, err
		}

		raw = append(raw, r)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return restoreAgency(agencyID, name, address, country, base, raw)
}

func (m mysqlStorage) Drop() error {
	if _, err := m.db.ExecContext(m.ctx, fmt.Sprintf(dropTable, m.rateTable)); err != nil {
		return err
	}

	_, err := m.db.ExecContext(m.ctx, fmt.Sprintf(dropTable, m.agencyTable))

	return err
}

func (m mysqlStorage) Close() error {
	return m.db.Close()
}

func (m mysqlStorage) GetStorageProviderName() string {
	return string(MySQL)
}
