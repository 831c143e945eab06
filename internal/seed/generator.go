// Package seed generates coherent demo data, replacing the hardcoded mock
// responses the dashboard shipped with before the backend existed.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/khayaprop/khaya/internal/models"
	"github.com/khayaprop/khaya/internal/store"
	"github.com/khayaprop/khaya/internal/subprop"
)

// Config holds the seeding inputs.
type Config struct {
	Scale Scale
	Seed  int64
}

// Generator writes a deterministic dataset through the store so seeded
// records pass the same validation as API writes.
type Generator struct {
	store  *store.Store
	gen    *subprop.Generator
	rng    *rand.Rand
	scale  Scale
	logger *zap.Logger

	emailSeq int
}

// New creates a Generator. A zero seed falls back to the current time.
func New(st *store.Store, cfg Config, logger *zap.Logger) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		store:  st,
		gen:    subprop.New(st),
		rng:    rand.New(rand.NewSource(seed)),
		scale:  cfg.Scale,
		logger: logger,
	}
}

func (g *Generator) pick(ss []string) string {
	return ss[g.rng.Intn(len(ss))]
}

// idNumber builds a 13-digit SA ID number with a valid Luhn check digit.
func (g *Generator) idNumber() string {
	digits := make([]int, 13)
	// Plausible date-of-birth prefix: YYMMDD.
	digits[0] = g.rng.Intn(8)
	digits[1] = g.rng.Intn(10)
	digits[2] = g.rng.Intn(2)
	digits[3] = 1 + g.rng.Intn(9)
	digits[4] = g.rng.Intn(3)
	digits[5] = 1 + g.rng.Intn(8)
	for i := 6; i < 12; i++ {
		digits[i] = g.rng.Intn(10)
	}

	sum := 0
	double := true
	for i := 11; i >= 0; i-- {
		d := digits[i]
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	digits[12] = (10 - sum%10) % 10

	s := ""
	for _, d := range digits {
		s += fmt.Sprintf("%d", d)
	}
	return s
}

func (g *Generator) phone() string {
	return fmt.Sprintf("08%d%07d", 1+g.rng.Intn(7), g.rng.Intn(10000000))
}

func (g *Generator) email(first, last string) string {
	g.emailSeq++
	return fmt.Sprintf("%s.%s.%d@example.co.za", sanitize(first), sanitize(last), g.emailSeq)
}

func sanitize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		}
	}
	return string(out)
}

// Run seeds the whole dataset.
func (g *Generator) Run(ctx context.Context) error {
	scale := g.scale
	landlords, err := g.seedLandlords(ctx, scale.Landlords)
	if err != nil {
		return err
	}
	properties, err := g.seedProperties(ctx, landlords, scale)
	if err != nil {
		return err
	}
	tenants, err := g.seedTenants(ctx, scale.Landlords*scale.TenantFactor)
	if err != nil {
		return err
	}
	leases, err := g.seedLeases(ctx, properties, tenants, scale)
	if err != nil {
		return err
	}
	if err := g.seedFinancials(ctx, leases); err != nil {
		return err
	}
	if err := g.seedMaintenance(ctx, leases, scale); err != nil {
		return err
	}

	g.logger.Info("seed complete",
		zap.Int("landlords", len(landlords)),
		zap.Int("properties", len(properties)),
		zap.Int("tenants", len(tenants)),
		zap.Int("leases", len(leases)))
	return nil
}

func (g *Generator) seedLandlords(ctx context.Context, n int) ([]*models.Landlord, error) {
	out := make([]*models.Landlord, 0, n)
	for i := 0; i < n; i++ {
		first, last := g.pick(firstNames), g.pick(lastNames)
		l := &models.Landlord{
			FirstName: first,
			LastName:  last,
			Email:     g.email(first, last),
			Phone:     g.phone(),
			IDNumber:  g.idNumber(),
		}
		if err := g.store.CreateLandlord(ctx, l); err != nil {
			return nil, fmt.Errorf("seed landlord: %w", err)
		}
		bank := banks[g.rng.Intn(len(banks))]
		acct := &models.BankAccount{
			LandlordID:    l.ID,
			BankName:      bank.Name,
			BranchCode:    bank.BranchCode,
			AccountNumber: fmt.Sprintf("%010d", g.rng.Intn(1_000_000_000)),
			AccountType:   models.AccountTypeCheque,
			Primary:       true,
		}
		if err := g.store.CreateBankAccount(ctx, acct); err != nil {
			return nil, fmt.Errorf("seed bank account: %w", err)
		}
		out = append(out, l)
	}
	return out, nil
}

func (g *Generator) seedProperties(ctx context.Context, landlords []*models.Landlord, scale Scale) ([]*models.Property, error) {
	var out []*models.Property
	for _, l := range landlords {
		for i := 0; i < scale.PropertiesPer; i++ {
			loc := cityProvinces[g.rng.Intn(len(cityProvinces))]
			isComplex := scale.ComplexRatio > 0 && g.rng.Intn(scale.ComplexRatio) == 0

			p := &models.Property{
				LandlordID:  l.ID,
				Name:        fmt.Sprintf("%d %s", 1+g.rng.Intn(200), g.pick(streets)),
				Type:        models.PropertyTypeHouse,
				Street:      g.pick(streets),
				Suburb:      g.pick(suburbs),
				City:        loc.City,
				Province:    loc.Province,
				PostalCode:  fmt.Sprintf("%04d", 1+g.rng.Intn(9998)),
				Bedrooms:    1 + g.rng.Intn(4),
				Bathrooms:   1 + g.rng.Intn(3),
				SizeSqm:     float64(45 + g.rng.Intn(400)),
				MonthlyRent: float64(4500 + g.rng.Intn(30)*500),
			}
			if isComplex {
				p.Name = g.pick(complexNames)
				p.Type = models.PropertyTypeComplex
			}
			if err := g.store.CreateProperty(ctx, p); err != nil {
				return nil, fmt.Errorf("seed property: %w", err)
			}

			if isComplex {
				units, err := g.seedUnits(ctx, p, scale.UnitsPerComplex)
				if err != nil {
					return nil, err
				}
				out = append(out, units...)
			} else {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

// seedUnits runs the real sub-property generator against a complex so the
// seeded data exercises the same path the dashboard uses.
func (g *Generator) seedUnits(ctx context.Context, parent *models.Property, count int) ([]*models.Property, error) {
	preview, err := g.gen.Generate(ctx, parent.ID, subprop.Request{
		Template: "{parent} Unit {nn}",
		Count:    count,
	})
	if err != nil {
		return nil, fmt.Errorf("seed units preview: %w", err)
	}
	units := make([]models.Property, 0, len(preview.Units))
	for _, u := range preview.Units {
		prop := u.Property
		prop.Bedrooms = 1 + g.rng.Intn(3)
		prop.Bathrooms = 1
		prop.SizeSqm = float64(40 + g.rng.Intn(80))
		prop.MonthlyRent = float64(3500 + g.rng.Intn(20)*500)
		prop.Type = models.PropertyTypeApartment
		units = append(units, prop)
	}
	created, err := g.gen.Commit(ctx, parent.ID, units)
	if err != nil {
		return nil, fmt.Errorf("seed units commit: %w", err)
	}
	return created, nil
}

func (g *Generator) seedTenants(ctx context.Context, n int) ([]*models.Tenant, error) {
	out := make([]*models.Tenant, 0, n)
	for i := 0; i < n; i++ {
		first, last := g.pick(firstNames), g.pick(lastNames)
		t := &models.Tenant{
			FirstName:      first,
			LastName:       last,
			Email:          g.email(first, last),
			Phone:          g.phone(),
			IDNumber:       g.idNumber(),
			Employer:       g.pick([]string{"Transnet", "Discovery", "Shoprite", "Sasol", "self-employed"}),
			MonthlyIncome:  float64(12000 + g.rng.Intn(60)*1000),
			EmergencyName:  g.pick(firstNames) + " " + g.pick(lastNames),
			EmergencyPhone: g.phone(),
		}
		if err := g.store.CreateTenant(ctx, t); err != nil {
			return nil, fmt.Errorf("seed tenant: %w", err)
		}
		out = append(out, t)
	}
	return out, nil
}

func (g *Generator) seedLeases(ctx context.Context, properties []*models.Property, tenants []*models.Tenant, scale Scale) ([]*models.Lease, error) {
	var out []*models.Lease
	now := time.Now()
	ti := 0
	for _, p := range properties {
		if p.Type == models.PropertyTypeComplex {
			continue
		}
		if g.rng.Intn(100) >= scale.LeaseOccupancyPct || ti >= len(tenants) {
			continue
		}
		tenant := tenants[ti]
		ti++

		monthsAgo := 1 + g.rng.Intn(18)
		start := now.AddDate(0, -monthsAgo, 0)
		end := start.AddDate(1, 0, 0)
		status := models.LeaseStatusActive
		if end.Before(now) {
			status = models.LeaseStatusExpired
		}

		l := &models.Lease{
			PropertyID:        p.ID,
			TenantID:          tenant.ID,
			StartDate:         start,
			EndDate:           end,
			MonthlyRent:       p.MonthlyRent,
			DepositAmount:     p.MonthlyRent * 2,
			EscalationPct:     float64(g.rng.Intn(10)),
			PaymentDayOfMonth: 1 + g.rng.Intn(7),
			Status:            status,
		}
		if err := g.store.CreateLease(ctx, l); err != nil {
			return nil, fmt.Errorf("seed lease: %w", err)
		}
		if status == models.LeaseStatusActive {
			p.Status = models.PropertyStatusOccupied
			if err := g.store.UpdateProperty(ctx, p.ID, p); err != nil {
				return nil, fmt.Errorf("seed occupancy: %w", err)
			}
		}
		out = append(out, l)
	}
	return out, nil
}

// seedFinancials bills every lease month by month up to now, paying most
// invoices and leaving a realistic overdue tail.
func (g *Generator) seedFinancials(ctx context.Context, leases []*models.Lease) error {
	now := time.Now()
	for _, l := range leases {
		for due := l.StartDate; due.Before(now) && due.Before(l.EndDate); due = due.AddDate(0, 1, 0) {
			inv := &models.Invoice{
				LeaseID:     l.ID,
				Number:      store.NewInvoiceNumber(),
				PeriodStart: due,
				PeriodEnd:   due.AddDate(0, 1, -1),
				Amount:      l.MonthlyRent,
				DueDate:     due,
				Status:      models.InvoiceStatusSent,
			}
			if err := g.store.CreateInvoice(ctx, inv); err != nil {
				return fmt.Errorf("seed invoice: %w", err)
			}

			// Roughly nine in ten invoices get paid.
			if g.rng.Intn(10) < 9 {
				p := &models.Payment{
					LeaseID:   l.ID,
					InvoiceID: &inv.ID,
					Amount:    inv.Amount,
					Method:    models.PaymentMethodEFT,
					PaidAt:    due.AddDate(0, 0, g.rng.Intn(5)),
					Reference: store.NewPaymentReference(),
				}
				if err := g.store.CreatePayment(ctx, p); err != nil {
					return fmt.Errorf("seed payment: %w", err)
				}
			}
		}
	}
	if _, err := g.store.MarkOverdueInvoices(ctx, now); err != nil {
		return fmt.Errorf("seed overdue pass: %w", err)
	}
	return nil
}

func (g *Generator) seedMaintenance(ctx context.Context, leases []*models.Lease, scale Scale) error {
	categories := []string{
		models.MaintenanceCategoryPlumbing, models.MaintenanceCategoryElectrical,
		models.MaintenanceCategoryStructural, models.MaintenanceCategoryAppliance,
		models.MaintenanceCategoryGarden, models.MaintenanceCategoryOther,
	}
	priorities := []string{
		models.MaintenancePriorityLow, models.MaintenancePriorityMedium,
		models.MaintenancePriorityHigh, models.MaintenancePriorityUrgent,
	}
	statuses := []string{
		models.MaintenanceStatusOpen, models.MaintenanceStatusInProgress,
		models.MaintenanceStatusCompleted,
	}

	for _, l := range leases {
		for i := 0; i < scale.MaintenancePerLease; i++ {
			cat := categories[g.rng.Intn(len(categories))]
			m := &models.MaintenanceItem{
				PropertyID:  l.PropertyID,
				Title:       g.pick(maintenanceTitles[cat]),
				Category:    cat,
				Priority:    priorities[g.rng.Intn(len(priorities))],
				Status:      statuses[g.rng.Intn(len(statuses))],
				ReportedAt:  time.Now().AddDate(0, 0, -g.rng.Intn(90)),
				QuoteAmount: float64(300 + g.rng.Intn(50)*100),
			}
			if err := g.store.CreateMaintenanceItem(ctx, m); err != nil {
				return fmt.Errorf("seed maintenance: %w", err)
			}
		}
	}
	return nil
}
