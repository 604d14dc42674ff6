package db

import (
	"context"
	"fmt"
	"time"
)

// FinanceTable identifies a money table for grouped-sum queries.
type FinanceTable string

const (
	TableBudgets  FinanceTable = "budgets"
	TableCosts    FinanceTable = "costs"
	TableExpenses FinanceTable = "expenses"
)

// Budget represents an allocated budget, optionally scoped to a project.
type Budget struct {
	ID        string
	ProjectID string // empty = workspace-level
	Amount    float64
	Currency  string
	StartDate time.Time
}

// Cost represents an incurred cost.
type Cost struct {
	ID          string
	ProjectID   string
	Amount      float64
	Currency    string
	Date        time.Time
	Description string
}

// Expense represents a recurring or one-off expense.
type Expense struct {
	ID          string
	ProjectID   string
	Amount      float64
	Currency    string
	StartDate   time.Time
	Description string
}

// SaveBudget creates or updates a budget.
func (d *DB) SaveBudget(ctx context.Context, b *Budget) error {
	if b.ID == "" {
		b.ID = newID()
	}
	if b.Currency == "" {
		b.Currency = "USD"
	}
	query := fmt.Sprintf(`
		INSERT INTO budgets (id, project_id, amount, currency, start_date)
		VALUES (%s, %s, %s, %s, %s)
		ON CONFLICT (id) DO UPDATE SET
			project_id = excluded.project_id,
			amount = excluded.amount,
			currency = excluded.currency,
			start_date = excluded.start_date
	`, d.Placeholder(1), d.Placeholder(2), d.Placeholder(3), d.Placeholder(4), d.Placeholder(5))
	if _, err := d.Exec(ctx, query, b.ID, nullableString(b.ProjectID), b.Amount, b.Currency, formatTime(b.StartDate)); err != nil {
		return fmt.Errorf("save budget: %w", err)
	}
	return nil
}

// SaveCost creates or updates a cost record.
func (d *DB) SaveCost(ctx context.Context, c *Cost) error {
	if c.ID == "" {
		c.ID = newID()
	}
	if c.Currency == "" {
		c.Currency = "USD"
	}
	query := fmt.Sprintf(`
		INSERT INTO costs (id, project_id, amount, currency, date, description)
		VALUES (%s, %s, %s, %s, %s, %s)
		ON CONFLICT (id) DO UPDATE SET
			project_id = excluded.project_id,
			amount = excluded.amount,
			currency = excluded.currency,
			date = excluded.date,
			description = excluded.description
	`, d.Placeholder(1), d.Placeholder(2), d.Placeholder(3), d.Placeholder(4), d.Placeholder(5), d.Placeholder(6))
	if _, err := d.Exec(ctx, query, c.ID, nullableString(c.ProjectID), c.Amount, c.Currency, formatTime(c.Date), c.Description); err != nil {
		return fmt.Errorf("save cost: %w", err)
	}
	return nil
}

// SaveExpense creates or updates an expense record.
func (d *DB) SaveExpense(ctx context.Context, e *Expense) error {
	if e.ID == "" {
		e.ID = newID()
	}
	if e.Currency == "" {
		e.Currency = "USD"
	}
	query := fmt.Sprintf(`
		INSERT INTO expenses (id, project_id, amount, currency, start_date, description)
		VALUES (%s, %s, %s, %s, %s, %s)
		ON CONFLICT (id) DO UPDATE SET
			project_id = excluded.project_id,
			amount = excluded.amount,
			currency = excluded.currency,
			start_date = excluded.start_date,
			description = excluded.description
	`, d.Placeholder(1), d.Placeholder(2), d.Placeholder(3), d.Placeholder(4), d.Placeholder(5), d.Placeholder(6))
	if _, err := d.Exec(ctx, query, e.ID, nullableString(e.ProjectID), e.Amount, e.Currency, formatTime(e.StartDate), e.Description); err != nil {
		return fmt.Errorf("save expense: %w", err)
	}
	return nil
}

// SumAmountByProject sums amounts grouped by project in one query.
// The empty-string key holds amounts with no project attribution.
func (d *DB) SumAmountByProject(ctx context.Context, table FinanceTable) (map[string]float64, error) {
	switch table {
	case TableBudgets, TableCosts, TableExpenses:
	default:
		return nil, fmt.Errorf("unknown finance table: %s", table)
	}

	query := fmt.Sprintf(`
		SELECT COALESCE(project_id, ''), COALESCE(SUM(amount), 0)
		FROM %s
		GROUP BY project_id
	`, table)

	rows, err := d.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sum %s by project: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	sums := make(map[string]float64)
	for rows.Next() {
		var projectID string
		var total float64
		if err := rows.Scan(&projectID, &total); err != nil {
			return nil, fmt.Errorf("scan %s sum: %w", table, err)
		}
		sums[projectID] += total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s sums: %w", table, err)
	}

	return sums, nil
}

// CostsBetween returns cost records whose date falls in [from, to).
func (d *DB) CostsBetween(ctx context.Context, from, to time.Time) ([]Cost, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, amount, currency, date, description
		FROM costs WHERE date >= %s AND date < %s
		ORDER BY date
	`, d.Placeholder(1), d.Placeholder(2))

	rows, err := d.Query(ctx, query, formatTime(from), formatTime(to))
	if err != nil {
		return nil, fmt.Errorf("costs between: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var costs []Cost
	for rows.Next() {
		var c Cost
		var projectID *string
		var date string
		if err := rows.Scan(&c.ID, &projectID, &c.Amount, &c.Currency, &date, &c.Description); err != nil {
			return nil, fmt.Errorf("scan cost: %w", err)
		}
		c.ProjectID = stringValue(projectID)
		c.Date = parseTime(date)
		costs = append(costs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate costs: %w", err)
	}

	return costs, nil
}

// ExpensesBetween returns expense records whose start date falls in [from, to).
func (d *DB) ExpensesBetween(ctx context.Context, from, to time.Time) ([]Expense, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, amount, currency, start_date, description
		FROM expenses WHERE start_date >= %s AND start_date < %s
		ORDER BY start_date
	`, d.Placeholder(1), d.Placeholder(2))

	rows, err := d.Query(ctx, query, formatTime(from), formatTime(to))
	if err != nil {
		return nil, fmt.Errorf("expenses between: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var expenses []Expense
	for rows.Next() {
		var e Expense
		var projectID *string
		var startDate string
		if err := rows.Scan(&e.ID, &projectID, &e.Amount, &e.Currency, &startDate, &e.Description); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.ProjectID = stringValue(projectID)
		e.StartDate = parseTime(startDate)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}

	return expenses, nil
}
