package payslip

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"payslip/internal/layout"
)

// Renderer turns draw instructions into a binary document. Measurer must
// report the same metrics Render uses.
type Renderer interface {
	Measurer() layout.Measurer
	Render(doc layout.Document) ([]byte, error)
	Extension() string
}

// Saver receives the finished document. It is only called after rendering
// succeeded.
type Saver interface {
	Save(ctx context.Context, filename string, data []byte) error
}

// Indicator is the caller's in-progress flag.
type Indicator interface {
	Begin()
	End()
}

// Observer records how each generation ended.
type Observer interface {
	ObserveDocument(outcome string, duration time.Duration)
}

type nopIndicator struct{}

func (nopIndicator) Begin() {}
func (nopIndicator) End()   {}

type nopObserver struct{}

func (nopObserver) ObserveDocument(string, time.Duration) {}

// Outcome labels passed to Observer.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

const (
	StagePrepare = "prepare"
	StageRender  = "render"
	StageSave    = "save"
)

type Service struct {
	Renderer Renderer
	Log      logrus.FieldLogger
	Observer Observer
}

func NewService(renderer Renderer, log logrus.FieldLogger, observer Observer) *Service {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Service{Renderer: renderer, Log: log, Observer: observer}
}

// Result describes a saved payslip.
type Result struct {
	FileName       string
	Size           int
	Incentive      decimal.Decimal
	Reconciliation Reconciliation
}

// Generate prepares, lays out, renders and saves one payslip. The indicator
// is started on entry and ended on every return path. If preparing or
// rendering fails nothing is handed to saver; what a failing saver already
// delivered is up to the saver (see storage.Multi).
func (s *Service) Generate(ctx context.Context, req Request, saver Saver, indicator Indicator) (res Result, err error) {
	if indicator == nil {
		indicator = nopIndicator{}
	}
	indicator.Begin()
	defer indicator.End()

	start := time.Now()
	defer func() {
		outcome := OutcomeSuccess
		if err != nil {
			outcome = OutcomeFailure
		}
		s.Observer.ObserveDocument(outcome, time.Since(start))
	}()

	doc, rec, err := Prepare(req)
	if err != nil {
		return Result{}, &GenerationError{Stage: StagePrepare, Err: err}
	}
	log := s.Log.WithFields(logrus.Fields{
		"employee": doc.Employee.Code,
		"period":   doc.Period.Label,
	})
	if !rec.Matches {
		log.WithFields(logrus.Fields{
			"supplied": rec.Supplied.StringFixed(2),
			"expected": rec.Expected.StringFixed(2),
		}).Warn("net pay does not match earnings less deductions")
	}

	data, err := s.render(doc)
	if err != nil {
		log.WithError(err).Error("payslip render failed")
		return Result{}, &GenerationError{Stage: StageRender, Err: err}
	}

	name := FileName(doc.Employee.Name, doc.Period.Label, s.Renderer.Extension())
	if err := ctx.Err(); err != nil {
		return Result{}, &GenerationError{Stage: StageSave, Err: err}
	}
	if err := saver.Save(ctx, name, data); err != nil {
		log.WithError(err).Error("payslip save failed")
		return Result{}, &GenerationError{Stage: StageSave, Err: err}
	}

	log.WithFields(logrus.Fields{"file": name, "bytes": len(data)}).Info("payslip generated")
	return Result{FileName: name, Size: len(data), Incentive: doc.Incentive, Reconciliation: rec}, nil
}

// render converts a backend panic into an error so the caller always sees
// the failure text.
func (s *Service) render(doc Document) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("renderer panic: %v", r)
		}
	}()
	out := layout.Document{
		Page:         Page(),
		Title:        titlePrefix + doc.Period.Label,
		Subject:      doc.Employee.Name,
		Instructions: Assemble(doc, s.Renderer.Measurer()),
	}
	return s.Renderer.Render(out)
}
