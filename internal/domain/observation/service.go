package observation

import (
	"context"
	"fmt"
	"time"

	"github.com/heartlog/heartlog/internal/domain/rules"
)

// AlertRecorder is the slice of the alert ledger the observation service
// needs: somewhere to put evaluator findings.
type AlertRecorder interface {
	Record(ctx context.Context, findings []rules.Finding) error
}

// snapshotDays bounds how far back evaluator snapshots reach. The widest rule
// window is 7 days; 30 leaves room for the heart-rate streak to be judged
// against real calendar gaps.
const snapshotDays = 30

type Service struct {
	obs      ObservationRepository
	alerts   AlertRecorder
	weight   rules.WeightEvaluator
	vitals   rules.VitalsEvaluator
	symptoms rules.SymptomEvaluator
	now      func() time.Time
}

func NewService(obs ObservationRepository, alerts AlertRecorder, th rules.Thresholds) *Service {
	s := &Service{
		obs:    obs,
		alerts: alerts,
		now:    time.Now,
	}
	// Evaluators read the clock through the service so a test that pins
	// s.now pins rule evaluation with it.
	clock := func() time.Time { return s.now() }
	s.weight = rules.NewWeightEvaluator(th, clock)
	s.vitals = rules.NewVitalsEvaluator(th, clock)
	s.symptoms = rules.NewSymptomEvaluator(th, clock)
	return s
}

// SaveWeight stores a weight reading and re-runs the weight-trend rules over
// the fresh series. Saving twice on one day keeps the later value.
func (s *Service) SaveWeight(ctx context.Context, value float64, taken time.Time) (*VitalReading, error) {
	r, err := s.saveVital(ctx, VitalWeight, value, taken)
	if err != nil {
		return nil, err
	}
	series, err := s.weightSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.alerts.Record(ctx, s.weight.Evaluate(series)); err != nil {
		return nil, fmt.Errorf("record weight findings: %w", err)
	}
	return r, nil
}

// SaveVital stores a heart-rate or SpO2 reading and re-runs the vital-signs
// rules.
func (s *Service) SaveVital(ctx context.Context, kind VitalKind, value float64, taken time.Time) (*VitalReading, error) {
	if kind != VitalHeartRate && kind != VitalSpO2 {
		return nil, fmt.Errorf("kind %s cannot be saved directly", kind)
	}
	r, err := s.saveVital(ctx, kind, value, taken)
	if err != nil {
		return nil, err
	}
	if err := s.evaluateVitals(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// SaveBloodPressure stores a systolic/diastolic pair sharing one timestamp
// and re-runs the vital-signs rules.
func (s *Service) SaveBloodPressure(ctx context.Context, systolic, diastolic float64, taken time.Time) error {
	if systolic <= diastolic {
		return fmt.Errorf("systolic %.0f must exceed diastolic %.0f", systolic, diastolic)
	}
	if _, err := s.saveVital(ctx, VitalSystolic, systolic, taken); err != nil {
		return err
	}
	if _, err := s.saveVital(ctx, VitalDiastolic, diastolic, taken); err != nil {
		return err
	}
	return s.evaluateVitals(ctx)
}

// SaveSymptoms stores severities for a day and runs the symptom rules over the
// merged entry. Severities outside [1,5] are clamped rather than rejected.
func (s *Service) SaveSymptoms(ctx context.Context, day time.Time, severities map[rules.SymptomKind]int) (*SymptomEntry, error) {
	if len(severities) == 0 {
		return nil, fmt.Errorf("no severities given")
	}
	e := &SymptomEntry{Day: rules.Day(day)}
	for kind, sev := range severities {
		if e.column(kind) == nil {
			return nil, fmt.Errorf("unknown symptom: %s", kind)
		}
		e.Set(kind, rules.ClampSeverity(sev))
	}
	if err := s.obs.UpsertSymptoms(ctx, e); err != nil {
		return nil, fmt.Errorf("save symptoms: %w", err)
	}

	// Evaluate the merged row, not the partial input: earlier answers from
	// the same day still count.
	merged, err := s.obs.SymptomEntryForDay(ctx, e.Day)
	if err != nil {
		return nil, fmt.Errorf("reload symptom entry: %w", err)
	}
	if merged == nil {
		merged = e
	}
	recentBP, err := s.bpSnapshot(ctx, 2)
	if err != nil {
		return nil, err
	}
	findings := s.symptoms.Evaluate(merged.Record(), recentBP)
	if err := s.alerts.Record(ctx, findings); err != nil {
		return nil, fmt.Errorf("record symptom findings: %w", err)
	}
	return merged, nil
}

func (s *Service) VitalSeries(ctx context.Context, kind VitalKind, from, to time.Time) ([]VitalReading, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown vital kind: %s", kind)
	}
	return s.obs.VitalSeries(ctx, kind, rules.Day(from), rules.Day(to))
}

// BloodPressureSeries pairs the stored systolic and diastolic rows by day.
// Days where only half the pair exists are skipped.
func (s *Service) BloodPressureSeries(ctx context.Context, from, to time.Time) ([]rules.BPReading, error) {
	sys, err := s.obs.VitalSeries(ctx, VitalSystolic, rules.Day(from), rules.Day(to))
	if err != nil {
		return nil, err
	}
	dia, err := s.obs.VitalSeries(ctx, VitalDiastolic, rules.Day(from), rules.Day(to))
	if err != nil {
		return nil, err
	}
	return pairBP(sys, dia), nil
}

func (s *Service) SymptomEntryForDay(ctx context.Context, day time.Time) (*SymptomEntry, error) {
	return s.obs.SymptomEntryForDay(ctx, rules.Day(day))
}

func (s *Service) ListSymptomEntries(ctx context.Context, from, to time.Time) ([]SymptomEntry, error) {
	return s.obs.ListSymptomEntries(ctx, rules.Day(from), rules.Day(to))
}

func (s *Service) saveVital(ctx context.Context, kind VitalKind, value float64, taken time.Time) (*VitalReading, error) {
	if value <= 0 {
		return nil, fmt.Errorf("%s value must be positive", kind)
	}
	if taken.IsZero() {
		taken = s.now()
	}
	r := &VitalReading{Kind: kind, Value: value, Taken: taken.UTC(), Day: rules.Day(taken)}
	if err := s.obs.UpsertVital(ctx, r); err != nil {
		return nil, fmt.Errorf("save %s: %w", kind, err)
	}
	return r, nil
}

func (s *Service) evaluateVitals(ctx context.Context) error {
	to := rules.Day(s.now())
	from := to.AddDate(0, 0, -snapshotDays)

	hr, err := s.obs.VitalSeries(ctx, VitalHeartRate, from, to)
	if err != nil {
		return fmt.Errorf("load heart-rate series: %w", err)
	}
	spo2, err := s.obs.VitalSeries(ctx, VitalSpO2, from, to)
	if err != nil {
		return fmt.Errorf("load spo2 series: %w", err)
	}
	bp, err := s.bpSnapshot(ctx, snapshotDays)
	if err != nil {
		return err
	}

	h := rules.VitalHistory{
		HeartRate: toReadings(hr),
		SpO2:      toReadings(spo2),
		BP:        bp,
	}
	if err := s.alerts.Record(ctx, s.vitals.Evaluate(h)); err != nil {
		return fmt.Errorf("record vital findings: %w", err)
	}
	return nil
}

func (s *Service) weightSnapshot(ctx context.Context) ([]rules.Reading, error) {
	to := rules.Day(s.now())
	series, err := s.obs.VitalSeries(ctx, VitalWeight, to.AddDate(0, 0, -snapshotDays), to)
	if err != nil {
		return nil, fmt.Errorf("load weight series: %w", err)
	}
	return toReadings(series), nil
}

func (s *Service) bpSnapshot(ctx context.Context, days int) ([]rules.BPReading, error) {
	to := rules.Day(s.now())
	from := to.AddDate(0, 0, -days)
	sys, err := s.obs.VitalSeries(ctx, VitalSystolic, from, to)
	if err != nil {
		return nil, fmt.Errorf("load systolic series: %w", err)
	}
	dia, err := s.obs.VitalSeries(ctx, VitalDiastolic, from, to)
	if err != nil {
		return nil, fmt.Errorf("load diastolic series: %w", err)
	}
	return pairBP(sys, dia), nil
}

func toReadings(series []VitalReading) []rules.Reading {
	out := make([]rules.Reading, 0, len(series))
	for _, r := range series {
		out = append(out, r.Reading())
	}
	return out
}

func pairBP(sys, dia []VitalReading) []rules.BPReading {
	diaByDay := make(map[time.Time]VitalReading, len(dia))
	for _, d := range dia {
		diaByDay[d.Day] = d
	}
	var out []rules.BPReading
	for _, sr := range sys {
		dr, ok := diaByDay[sr.Day]
		if !ok {
			continue
		}
		out = append(out, rules.BPReading{Systolic: sr.Value, Diastolic: dr.Value, Taken: sr.Taken})
	}
	return out
}
