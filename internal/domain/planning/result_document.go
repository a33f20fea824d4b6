package planning

import (
	"fmt"
	"math"

	"github.com/andrescamacho/factory-planner-go/internal/domain/material"
	"github.com/andrescamacho/factory-planner-go/internal/domain/process"
)

// ResultDocument is the serializable form of a Result.
// JSON has no infinity, so an unbounded amount is encoded as a nil Amount.
type ResultDocument struct {
	Kind         ResultKind   `json:"kind"`
	Reason       string       `json:"reason,omitempty"`
	Rates        []RateEntry  `json:"rates,omitempty"`
	LowerBounds  []BoundEntry `json:"lower_bounds,omitempty"`
	HigherBounds []BoundEntry `json:"higher_bounds,omitempty"`
}

// RateEntry is one process rate, in model order
type RateEntry struct {
	Process process.Key `json:"process"`
	Rate    float64     `json:"rate"`
}

// BoundEntry is one material bound; a nil Amount means unbounded
type BoundEntry struct {
	Material material.Key `json:"material"`
	Amount   *float64     `json:"amount"`
}

// EncodeResult converts a Result to its document form with deterministic ordering
func EncodeResult(r Result) ResultDocument {
	switch res := r.(type) {
	case NoSolution:
		return ResultDocument{Kind: ResultNoSolution, Reason: res.Reason}
	case OneSolution:
		doc := ResultDocument{Kind: ResultOneSolution, Rates: make([]RateEntry, 0, len(res.Rates))}
		for _, p := range res.Processes {
			doc.Rates = append(doc.Rates, RateEntry{Process: p.Key(), Rate: res.Rates[p.Key()]})
		}
		return doc
	case MultipleSolutions:
		return ResultDocument{
			Kind:         ResultMultipleSolutions,
			LowerBounds:  encodeBounds(res.LowerBounds),
			HigherBounds: encodeBounds(res.HigherBounds),
		}
	default:
		return ResultDocument{Kind: ResultNoSolution, Reason: "unknown result"}
	}
}

func encodeBounds(bounds map[material.Key]float64) []BoundEntry {
	entries := make([]BoundEntry, 0, len(bounds))
	for _, key := range material.SortedKeys(bounds) {
		entry := BoundEntry{Material: key}
		if v := bounds[key]; !math.IsInf(v, 0) {
			entry.Amount = &v
		}
		entries = append(entries, entry)
	}
	return entries
}

// Decode rebuilds the Result. OneSolution.Processes carries the keys only; productivity
// is not part of a result.
func (d ResultDocument) Decode() (Result, error) {
	switch d.Kind {
	case ResultNoSolution:
		return NoSolution{Reason: d.Reason}, nil
	case ResultOneSolution:
		sol := OneSolution{
			Rates:     make(map[process.Key]float64, len(d.Rates)),
			Processes: make([]process.Process, 0, len(d.Rates)),
		}
		for _, e := range d.Rates {
			sol.Rates[e.Process] = e.Rate
			sol.Processes = append(sol.Processes, process.New(e.Process.Kind, e.Process.Name))
		}
		return sol, nil
	case ResultMultipleSolutions:
		return MultipleSolutions{
			LowerBounds:  decodeBounds(d.LowerBounds),
			HigherBounds: decodeBounds(d.HigherBounds),
		}, nil
	default:
		return nil, fmt.Errorf("unknown result kind %q", d.Kind)
	}
}

func decodeBounds(entries []BoundEntry) map[material.Key]float64 {
	bounds := make(map[material.Key]float64, len(entries))
	for _, e := range entries {
		if e.Amount == nil {
			bounds[e.Material] = math.Inf(1)
			continue
		}
		bounds[e.Material] = *e.Amount
	}
	return bounds
}
