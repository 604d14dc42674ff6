package db

import (
	"context"
	"testing"
	"time"
)

func TestSumAmountByProject(t *testing.T) {
	t.Parallel()
	d := NewTestDB(t)
	ctx := context.Background()

	costs := []*Cost{
		{ProjectID: "p1", Amount: 100, Date: time.Now()},
		{ProjectID: "p1", Amount: 50.25, Date: time.Now()},
		{ProjectID: "p2", Amount: 10, Date: time.Now()},
		{Amount: 5, Date: time.Now()}, // unattributed
	}
	for _, c := range costs {
		if err := d.SaveCost(ctx, c); err != nil {
			t.Fatalf("save cost: %v", err)
		}
	}

	sums, err := d.SumAmountByProject(ctx, TableCosts)
	if err != nil {
		t.Fatalf("SumAmountByProject failed: %v", err)
	}
	if sums["p1"] != 150.25 {
		t.Errorf("p1: got %v, want 150.25", sums["p1"])
	}
	if sums["p2"] != 10 {
		t.Errorf("p2: got %v, want 10", sums["p2"])
	}
	// Unattributed amounts group under the empty key.
	if sums[""] != 5 {
		t.Errorf("unattributed: got %v, want 5", sums[""])
	}
}

func TestSumAmountByProjectRejectsUnknownTable(t *testing.T) {
	t.Parallel()
	d := NewTestDB(t)

	if _, err := d.SumAmountByProject(context.Background(), FinanceTable("tasks")); err == nil {
		t.Fatal("expected error for non-finance table")
	}
}

func TestCostsBetween(t *testing.T) {
	t.Parallel()
	d := NewTestDB(t)
	ctx := context.Background()

	dates := []time.Time{
		time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), // before window
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),  // first instant inside
		time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), // first instant outside
	}
	for i, date := range dates {
		c := &Cost{Amount: float64(i + 1), Date: date}
		if err := d.SaveCost(ctx, c); err != nil {
			t.Fatalf("save cost: %v", err)
		}
	}

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	costs, err := d.CostsBetween(ctx, from, to)
	if err != nil {
		t.Fatalf("CostsBetween failed: %v", err)
	}
	if len(costs) != 2 {
		t.Fatalf("expected 2 costs in [from,to), got %d", len(costs))
	}
}

func TestExpensesBetween(t *testing.T) {
	t.Parallel()
	d := NewTestDB(t)
	ctx := context.Background()

	exp := &Expense{
		ProjectID:   "p1",
		Amount:      75.50,
		Currency:    "USD",
		StartDate:   time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		Description: "licenses",
	}
	if err := d.SaveExpense(ctx, exp); err != nil {
		t.Fatalf("SaveExpense failed: %v", err)
	}

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	expenses, err := d.ExpensesBetween(ctx, from, to)
	if err != nil {
		t.Fatalf("ExpensesBetween failed: %v", err)
	}
	if len(expenses) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(expenses))
	}
	if expenses[0].Amount != 75.50 {
		t.Errorf("Amount = %v, want 75.50", expenses[0].Amount)
	}
	if expenses[0].Description != "licenses" {
		t.Errorf("Description = %q, want licenses", expenses[0].Description)
	}
}

func TestBudgetUpsert(t *testing.T) {
	t.Parallel()
	d := NewTestDB(t)
	ctx := context.Background()

	b := &Budget{ProjectID: "p1", Amount: 1000, Currency: "USD"}
	if err := d.SaveBudget(ctx, b); err != nil {
		t.Fatalf("SaveBudget failed: %v", err)
	}

	b.Amount = 1500
	if err := d.SaveBudget(ctx, b); err != nil {
		t.Fatalf("SaveBudget update failed: %v", err)
	}

	sums, err := d.SumAmountByProject(ctx, TableBudgets)
	if err != nil {
		t.Fatalf("SumAmountByProject failed: %v", err)
	}
	if sums["p1"] != 1500 {
		t.Errorf("p1 budget: got %v, want 1500 (upsert, not insert)", sums["p1"])
	}
}
