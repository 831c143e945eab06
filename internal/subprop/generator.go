// Package subprop implements the bulk sub-property generator: expanding a
// name template against a parent property into unit records, previewed and
// edited by the user before a transactional commit.
package subprop

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/khayaprop/khaya/internal/apperr"
	"github.com/khayaprop/khaya/internal/models"
	"github.com/khayaprop/khaya/internal/store"
	"github.com/khayaprop/khaya/internal/validate"
)

// Batch size limits for one generation run.
const (
	MinCount = 1
	MaxCount = 200
)

var tokenRe = regexp.MustCompile(`\{[a-z]+\}`)

// Recognized template tokens.
var knownTokens = map[string]bool{
	"{parent}": true,
	"{n}":      true,
	"{nn}":     true,
	"{nnn}":    true,
}

// Request describes one generation run against a parent property.
type Request struct {
	Template    string `json:"template"`
	Count       int    `json:"count"`
	StartNumber int    `json:"start_number"`
}

// Unit is one generated sub-property with any preview warnings attached.
type Unit struct {
	Property models.Property `json:"property"`
	Warnings []string        `json:"warnings,omitempty"`
}

// Preview is the reviewable result of a generation run.
type Preview struct {
	ParentID uint   `json:"parent_id"`
	Units    []Unit `json:"units"`
}

// Generator expands templates into sub-property records.
type Generator struct {
	store *store.Store
}

// New creates a Generator backed by the given store.
func New(s *store.Store) *Generator {
	return &Generator{store: s}
}

func (r *Request) validate() validate.Errors {
	e := validate.Errors{}
	e.Require("template", r.Template)
	e.Check("count", r.Count >= MinCount && r.Count <= MaxCount,
		fmt.Sprintf("must be between %d and %d", MinCount, MaxCount))
	e.Check("start_number", r.StartNumber >= 0, "must not be negative")
	for _, tok := range tokenRe.FindAllString(r.Template, -1) {
		if !knownTokens[tok] {
			e.Check("template", false, "unknown token "+tok)
			break
		}
	}
	return e
}

// expand renders the template for one sequence number.
func expand(template, parentName string, n int) string {
	out := strings.ReplaceAll(template, "{parent}", parentName)
	out = strings.ReplaceAll(out, "{nnn}", fmt.Sprintf("%03d", n))
	out = strings.ReplaceAll(out, "{nn}", fmt.Sprintf("%02d", n))
	out = strings.ReplaceAll(out, "{n}", fmt.Sprintf("%d", n))
	return out
}

func hasSequenceToken(template string) bool {
	return strings.Contains(template, "{n}") ||
		strings.Contains(template, "{nn}") ||
		strings.Contains(template, "{nnn}")
}

// unitRef builds the generated unit reference, e.g. "GP-17-0004". Parents in
// an unknown province fall back to "ZZ".
func unitRef(parent *models.Property, seq int) string {
	code, ok := validate.ProvinceCodes[parent.Province]
	if !ok {
		code = "ZZ"
	}
	return fmt.Sprintf("%s-%d-%04d", code, parent.ID, seq)
}

// Generate expands the request into a preview without writing anything.
// The parent must be a top-level property; nesting is rejected.
func (g *Generator) Generate(ctx context.Context, parentID uint, req Request) (*Preview, error) {
	if req.StartNumber == 0 {
		req.StartNumber = 1
	}
	if e := req.validate(); !e.OK() {
		return nil, apperr.Validation(e)
	}

	parent, err := g.store.GetProperty(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent.IsSubProperty() {
		return nil, apperr.Validation(validate.Errors{
			"parent_id": "sub-properties cannot have their own sub-properties",
		})
	}

	template := req.Template
	if !hasSequenceToken(template) {
		template += " {n}"
	}

	siblings, err := g.store.ListSubProperties(ctx, parent.ID)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(siblings))
	for _, s := range siblings {
		taken[s.Name] = true
	}

	preview := &Preview{ParentID: parent.ID}
	for i := 0; i < req.Count; i++ {
		seq := req.StartNumber + i
		name := expand(template, parent.Name, seq)

		unit := Unit{Property: models.Property{
			LandlordID:       parent.LandlordID,
			ParentPropertyID: &parent.ID,
			Name:             name,
			UnitRef:          unitRef(parent, seq),
			Type:             parent.Type,
			Street:           parent.Street,
			Suburb:           parent.Suburb,
			City:             parent.City,
			Province:         parent.Province,
			PostalCode:       parent.PostalCode,
			Status:           models.PropertyStatusVacant,
		}}
		if taken[name] {
			unit.Warnings = append(unit.Warnings, "name already used by an existing sub-property")
		}
		taken[name] = true
		preview.Units = append(preview.Units, unit)
	}
	return preview, nil
}

// Commit inserts a reviewed unit list in one transaction. Every unit is
// re-validated and forced onto the parent; a single bad unit aborts the
// batch.
func (g *Generator) Commit(ctx context.Context, parentID uint, units []models.Property) ([]*models.Property, error) {
	if len(units) == 0 {
		return nil, apperr.Validation(validate.Errors{"units": "must not be empty"})
	}
	if len(units) > MaxCount {
		return nil, apperr.Validation(validate.Errors{
			"units": fmt.Sprintf("must not exceed %d", MaxCount),
		})
	}

	parent, err := g.store.GetProperty(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent.IsSubProperty() {
		return nil, apperr.Validation(validate.Errors{
			"parent_id": "sub-properties cannot have their own sub-properties",
		})
	}

	records := make([]*models.Property, 0, len(units))
	for i := range units {
		u := units[i]
		u.ID = 0
		u.LandlordID = parent.LandlordID
		u.ParentPropertyID = &parent.ID
		records = append(records, &u)
	}
	if err := g.store.CreateProperties(ctx, records); err != nil {
		return nil, err
	}
	return records, nil
}
