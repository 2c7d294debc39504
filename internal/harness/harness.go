package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"github.com/roach88/aliasdex/internal/catalog"
	"github.com/roach88/aliasdex/internal/resolve"
	"github.com/roach88/aliasdex/internal/store"
)

// Harness runs the steps of one scenario against one store.
type Harness struct {
	store   *store.Store
	forms   *resolve.FormResolver
	aliases *resolve.AliasResolver
	seq     int64
	logger  *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Create fresh in-memory database
// 2. Load the fixture file and inline seed
// 3. Execute steps, checking expect clauses
// 4. Evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario, nil)
}

// RunContext is Run with a caller-supplied context and logger.
// A nil logger discards all output.
func RunContext(ctx context.Context, scenario *Scenario, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	if err := seedStore(ctx, st, scenario); err != nil {
		return nil, err
	}

	h := &Harness{
		store:   st,
		forms:   resolve.NewFormResolver(st, logger),
		aliases: resolve.NewAliasResolver(st, logger),
		logger:  logger,
	}

	result := NewResult()
	if err := h.executeSteps(ctx, scenario.Steps, result); err != nil {
		return nil, fmt.Errorf("failed to execute steps: %w", err)
	}

	actx := &AssertionContext{
		Store: st,
		Ctx:   ctx,
	}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

func seedStore(ctx context.Context, st *store.Store, scenario *Scenario) error {
	if scenario.Fixture != "" {
		fx, err := store.LoadFixtureFile(scenario.Fixture)
		if err != nil {
			return err
		}
		if err := st.LoadFixture(ctx, fx); err != nil {
			return fmt.Errorf("failed to load fixture: %w", err)
		}
	}
	if scenario.Seed != nil {
		if err := st.LoadFixture(ctx, scenario.Seed); err != nil {
			return fmt.Errorf("failed to load seed: %w", err)
		}
	}
	return nil
}

func (h *Harness) next() int64 {
	h.seq++
	return h.seq
}

// executeSteps runs every step, recording an invocation and a completion
// for each and comparing the completion against the step's expect clause.
func (h *Harness) executeSteps(ctx context.Context, steps []Step, result *Result) error {
	for i, step := range steps {
		args := step.Args
		if args == nil {
			args = map[string]any{}
		}
		result.AddInvocationTrace(step.Op, args, h.next())

		out, err := h.execute(ctx, step.Op, args)
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", i, step.Op, err)
		}

		outputCase := CaseOK
		if found, ok := out["found"].(bool); ok && !found {
			outputCase = CaseNotFound
		}
		result.AddCompletionTrace(step.Op, outputCase, out, h.next())

		if step.Expect != nil {
			for key, want := range step.Expect {
				got, exists := out[key]
				if !exists {
					result.AddError(fmt.Sprintf("steps[%d] %s: result has no field %q", i, step.Op, key))
					continue
				}
				if !reflect.DeepEqual(normalize(want), normalize(got)) {
					result.AddError(fmt.Sprintf("steps[%d] %s: %s = %v, want %v", i, step.Op, key, got, want))
				}
			}
		}

		h.logger.Debug("step completed", "step", i, "op", step.Op, "output_case", outputCase)
	}
	return nil
}

func (h *Harness) execute(ctx context.Context, op string, args map[string]any) (map[string]any, error) {
	str := func(key string) string {
		s, _ := args[key].(string)
		return s
	}

	switch op {
	case OpNames:
		names, err := h.store.SuggestNames(ctx, str("typed"))
		if err != nil {
			return nil, err
		}
		return map[string]any{"names": toAnySlice(names)}, nil

	case OpForms:
		fs, err := h.forms.Resolve(ctx, str("name"))
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"found":   fs.Found,
			"default": fs.Default,
			"labels":  toAnySlice(fs.Texts()),
		}, nil
	}

	sel, err := h.selectForm(ctx, str("name"), str("label"))
	if err != nil {
		return nil, err
	}
	out := map[string]any{
		"found":   sel.Found,
		"form_id": sel.Key.FormID,
	}

	switch op {
	case OpList:
		aliases, err := h.aliases.List(ctx, sel)
		if err != nil {
			return nil, err
		}
		out["aliases"] = toAnySlice(aliases)
	case OpAdd:
		if err := h.aliases.Add(ctx, sel, str("alias")); err != nil {
			return nil, err
		}
		var rows int64
		if sel.Found {
			rows = 1
		}
		out["rows"] = rows
	case OpEdit:
		n, err := h.aliases.Edit(ctx, sel, str("alias"), str("new_alias"))
		if err != nil {
			return nil, err
		}
		out["rows"] = n
	case OpDelete:
		n, err := h.aliases.Delete(ctx, sel, str("alias"))
		if err != nil {
			return nil, err
		}
		out["rows"] = n
	default:
		return nil, fmt.Errorf("unknown op %q", op)
	}
	return out, nil
}

func (h *Harness) selectForm(ctx context.Context, name, label string) (resolve.Selection, error) {
	fs, err := h.forms.Resolve(ctx, name)
	if err != nil {
		return resolve.Selection{}, err
	}
	return h.aliases.SelectForm(ctx, fs, label)
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// normalize maps YAML-decoded and Go-built values onto one representation
// so they can be compared with reflect.DeepEqual.
func normalize(v any) any {
	switch val := v.(type) {
	case int:
		return int64(val)
	case string:
		return catalog.NormalizeText(val)
	case []string:
		return normalize(toAnySlice(val))
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = normalize(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = normalize(e)
		}
		return out
	default:
		return v
	}
}
