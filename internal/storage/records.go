package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/superstore-dash/internal/model"
)

// SaveRecords replaces every stored record of source with records, keeping
// their order.
func (s *SQLiteStorage) SaveRecords(ctx context.Context, source string, records []model.Record) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(source, "source"); err != nil {
		return err
	}
	if err := validateRecords(records); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE source = ?`, source); err != nil {
		return fmt.Errorf("failed to clear records for %s: %w", source, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (
			source, row_num, order_id, order_date, ship_date, delivery_days,
			customer_id, customer_name, segment, category, sub_category,
			region, market, ship_mode, order_month, order_weekday,
			sales, profit, discount, shipping_cost
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range records {
		_, err = stmt.ExecContext(ctx,
			source,
			i,
			r.OrderID,
			nullTime(r.OrderDate),
			nullTime(r.ShipDate),
			nullInt(r.DeliveryDays),
			r.CustomerID,
			r.CustomerName,
			r.Segment,
			r.Category,
			r.SubCategory,
			r.Region,
			r.Market,
			r.ShipMode,
			r.OrderMonth,
			r.OrderWeekday,
			r.Sales,
			r.Profit,
			r.Discount,
			r.ShippingCost,
		)
		if err != nil {
			return fmt.Errorf("failed to insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit records: %w", err)
	}

	slog.Debug("Saved records", "source", source, "count", len(records))
	return nil
}

// CountRecords returns the number of stored records for source.
func (s *SQLiteStorage) CountRecords(ctx context.Context, source string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records WHERE source = ?`, source).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// LatestSource returns the source of the most recent snapshot.
func (s *SQLiteStorage) LatestSource(ctx context.Context) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}

	var source string
	err := s.db.QueryRowContext(ctx, `SELECT source FROM snapshots ORDER BY id DESC LIMIT 1`).Scan(&source)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrSnapshotNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to find latest source: %w", err)
	}
	return source, nil
}

// LoadRecords returns the stored records of source in their original order.
func (s *SQLiteStorage) LoadRecords(ctx context.Context, source string) ([]model.Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT order_id, order_date, ship_date, delivery_days,
			customer_id, customer_name, segment, category, sub_category,
			region, market, ship_mode, order_month, order_weekday,
			sales, profit, discount, shipping_cost
		FROM records
		WHERE source = ?
		ORDER BY row_num
	`, source)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.Record
	for rows.Next() {
		var (
			r         model.Record
			orderDate sql.NullTime
			shipDate  sql.NullTime
			days      sql.NullInt64
		)
		if err := rows.Scan(
			&r.OrderID, &orderDate, &shipDate, &days,
			&r.CustomerID, &r.CustomerName, &r.Segment, &r.Category, &r.SubCategory,
			&r.Region, &r.Market, &r.ShipMode, &r.OrderMonth, &r.OrderWeekday,
			&r.Sales, &r.Profit, &r.Discount, &r.ShippingCost,
		); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		r.OrderDate = timePtr(orderDate)
		r.ShipDate = timePtr(shipDate)
		if days.Valid {
			d := int(days.Int64)
			r.DeliveryDays = &d
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}

	return records, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}
