package pldgen

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/ukaji3/pldgen-go/pkg/pldgen/models"
	"github.com/ukaji3/pldgen-go/pkg/pldgen/parser"
	"github.com/ukaji3/pldgen-go/pkg/pldgen/rules"
	"github.com/ukaji3/pldgen-go/pkg/pldgen/transform"
	"gitlab.com/tozd/go/errors"
)

// Result is the outcome of a conversion that was not aborted.
type Result struct {
	// RunID tags the log lines of this conversion.
	RunID string
	// Artifact is the serialized workbook.
	Artifact *Artifact
	// Workbook holds the output tables in sheet order.
	Workbook *models.Workbook
	// SheetErrors lists the recoverable per-sheet failures, one per sheet.
	SheetErrors []*SheetError
}

// Err joins the recoverable sheet errors, or returns nil when there are none.
func (r *Result) Err() error {
	if len(r.SheetErrors) == 0 {
		return nil
	}
	errs := make([]error, len(r.SheetErrors))
	for i, e := range r.SheetErrors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// Convert builds the PLD workbook for req from the rules workbook in input.
//
// Sheets are produced in registry order. A missing or unreadable source sheet is
// recorded in Result.SheetErrors when its rule's policy is recoverable; otherwise the
// conversion stops and no artifact is returned. The input workbook is never modified.
func Convert(ctx context.Context, req Request, input io.Reader, opts Options) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	reg, err := opts.registry()
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	logger := zerolog.Ctx(ctx).With().Str("run_id", runID).Logger()
	ctx = logger.WithContext(ctx)

	src, err := parser.Open(input)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	logger.Info().
		Str("po_id", req.POID).
		Str("id", req.ID).
		Strs("input_sheets", src.SheetNames()).
		Msg("starting conversion")

	result := &Result{RunID: runID, Workbook: models.NewWorkbook()}

	for _, rule := range reg.Sheets {
		table, err := buildSheet(ctx, src, req, rule)
		if err == nil {
			result.Workbook.Add(rule.Name, table)
			logger.Debug().
				Str("sheet", rule.Name).
				Str("kind", string(rule.Kind)).
				Int("rows", len(table.Rows)).
				Msg("sheet built")
			continue
		}

		sheetErr := NewSheetError(rule.Name, rule.Source, err)
		policy := rule.Policy()
		if !policy.Recoverable() {
			logger.Error().Err(err).Str("sheet", rule.Name).Msg("aborting conversion")
			return nil, sheetErr
		}

		logger.Warn().Err(err).Str("sheet", rule.Name).Str("policy", string(policy)).Msg("skipping sheet")
		result.SheetErrors = append(result.SheetErrors, sheetErr)
		if policy == rules.MissingPlaceholder {
			result.Workbook.Add(rule.Name, rule.PlaceholderTable())
		}
	}

	artifact, err := Package(req, result.Workbook)
	if err != nil {
		return nil, err
	}
	result.Artifact = artifact

	logger.Info().
		Str("file", artifact.Name).
		Int("sheets", result.Workbook.Len()).
		Int("sheet_errors", len(result.SheetErrors)).
		Msg("conversion complete")

	return result, nil
}

func buildSheet(ctx context.Context, src *parser.Source, req Request, rule rules.Rule) (*models.Table, error) {
	switch rule.Kind {
	case rules.KindSynthesized:
		return synthesize(req, rule), nil
	case rules.KindStaticPlaceholder:
		return rule.PlaceholderTable(), nil
	case rules.KindVerbatimCopy, rules.KindRenamedCopy:
		return parser.ReadSheet(ctx, src, rule.Source)
	case rules.KindTransformedCopy:
		table, err := parser.ReadSheet(ctx, src, rule.Source)
		if err != nil {
			return nil, err
		}
		if err := applyTransforms(ctx, table, rule.Transforms); err != nil {
			return nil, err
		}
		return table, nil
	default:
		return nil, errors.Errorf("unknown rule kind %q", rule.Kind)
	}
}

func synthesize(req Request, rule rules.Rule) *models.Table {
	cols := make([]string, len(rule.Fields))
	row := make([]models.Cell, len(rule.Fields))
	for i, f := range rule.Fields {
		cols[i] = f.Name
		if f.Input != "" {
			row[i] = models.String(req.Input(f.Input))
		} else {
			row[i] = models.String(f.Value)
		}
	}
	t := models.NewTable(cols...)
	t.AppendRow(row...)
	return t
}

// applyTransforms runs each transform over every row. A transform whose input column
// is absent is skipped, unless it is required, in which case its output column is
// created and filled with the declared default. Rows are never dropped.
func applyTransforms(ctx context.Context, table *models.Table, transforms []rules.Transform) error {
	logger := zerolog.Ctx(ctx)
	for _, tr := range transforms {
		fn, err := transform.Lookup(tr.Func)
		if err != nil {
			return err
		}

		in, ok := table.Column(tr.InputColumn())
		if !ok {
			if tr.Required {
				fill := make([]models.Cell, len(table.Rows))
				for i := range fill {
					fill[i] = tr.DefaultCell()
				}
				table.SetColumn(tr.Column, fill)
			}
			logger.Debug().
				Str("column", tr.InputColumn()).
				Bool("filled", tr.Required).
				Msg("transform input column absent")
			continue
		}

		out := make([]models.Cell, len(in))
		emptied := 0
		for i, c := range in {
			out[i] = fn(c)
			if out[i].IsEmpty() && !c.IsEmpty() {
				emptied++
			}
		}
		table.SetColumn(tr.Column, out)

		if emptied > 0 {
			logger.Debug().
				Str("column", tr.Column).
				Str("func", tr.Func).
				Int("coerced_to_null", emptied).
				Msg("uncoercible cells")
		}
	}
	return nil
}
