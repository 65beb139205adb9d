package calculation

import (
	"context"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/rgehrsitz/finplan/internal/domain"
)

// trialsPerChunk fixes how trials are grouped onto random sources. Changing it changes
// the sequence produced for a given seed.
const trialsPerChunk = 256

// MonteCarloParams configures a wealth-path simulation
type MonteCarloParams struct {
	Initial             float64
	MonthlyContribution float64
	Years               float64
	MeanReturnPct       float64 // annual %
	VolatilityPct       float64 // annual %
	TargetCorpus        float64
	Trials              int

	// MonthlySteps compounds monthly; otherwise one normal draw per year is used
	MonthlySteps bool
	// Lognormal uses a drift-corrected geometric step (monthly mode only)
	Lognormal bool
	Timing    domain.Timing

	// Seed makes the run reproducible; 0 seeds from the clock
	Seed int64
	// Workers bounds the worker pool; 0 uses runtime.NumCPU()
	Workers int
	// Progress, when set, is called after each chunk with trials completed so far
	Progress func(done, total int)
}

// MonteCarloResult holds order statistics over the simulated end values
type MonteCarloResult struct {
	Median        float64   `json:"median"`
	P10           float64   `json:"p10"`
	P90           float64   `json:"p90"`
	Probability   float64   `json:"probability"` // % of trials ending at or above target
	SortedResults []float64 `json:"-"`
	Trials        int       `json:"trials"`
	Seed          int64     `json:"seed"`
}

// normalRandom draws a standard normal variate with Box-Muller, retrying zero uniforms
func normalRandom(rng *rand.Rand) float64 {
	u, v := 0.0, 0.0
	for u == 0 {
		u = rng.Float64()
	}
	for v == 0 {
		v = rng.Float64()
	}
	return math.Sqrt(-2.0*math.Log(u)) * math.Cos(2.0*math.Pi*v)
}

// chunkSeed derives an independent stream seed for chunk k
func chunkSeed(seed int64, k int) int64 {
	return int64(uint64(seed) ^ (uint64(k+1) * 0x9E3779B97F4A7C15))
}

// simulatePath runs one trial and returns its terminal corpus
func simulatePath(p *MonteCarloParams, rng *rand.Rand) float64 {
	corpus := p.Initial
	if p.MonthlySteps {
		muA := p.MeanReturnPct / 100
		sigmaA := p.VolatilityPct / 100
		muM := muA / 12
		if p.Lognormal {
			muM = math.Log(1+muA) / 12
		}
		sigmaM := sigmaA / math.Sqrt(12)
		months := MonthsIn(p.Years)
		due := p.Timing.IsDue()

		for m := 0; m < months; m++ {
			z := normalRandom(rng)
			var factor float64
			if p.Lognormal {
				factor = math.Exp(muM - 0.5*sigmaM*sigmaM + sigmaM*z)
			} else {
				factor = 1 + muM + sigmaM*z
			}
			if due {
				corpus = (corpus + p.MonthlyContribution) * factor
			} else {
				corpus = corpus*factor + p.MonthlyContribution
			}
		}
		return corpus
	}

	for year := 0; float64(year) < p.Years; year++ {
		z := normalRandom(rng)
		r := p.MeanReturnPct/100 + (p.VolatilityPct/100)*z
		corpus = corpus*(1+r) + p.MonthlyContribution*12
	}
	return corpus
}

// RunMonteCarlo simulates p.Trials independent wealth paths and summarizes them.
// Results for a fixed seed do not depend on the worker count.
func RunMonteCarlo(ctx context.Context, p MonteCarloParams) (*MonteCarloResult, error) {
	if p.Seed == 0 {
		p.Seed = time.Now().UnixNano()
	}
	trials := p.Trials
	if trials < 0 {
		trials = 0
	}

	results := make([]float64, trials)
	chunks := (trials + trialsPerChunk - 1) / trialsPerChunk

	workers := p.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > chunks {
		workers = chunks
	}

	jobs := make(chan int)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		done     int
		canceled bool
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range jobs {
				rng := rand.New(rand.NewSource(chunkSeed(p.Seed, k)))
				start := k * trialsPerChunk
				end := start + trialsPerChunk
				if end > trials {
					end = trials
				}
				for i := start; i < end; i++ {
					results[i] = simulatePath(&p, rng)
				}
				if p.Progress != nil {
					mu.Lock()
					done += end - start
					p.Progress(done, trials)
					mu.Unlock()
				}
			}
		}()
	}

	for k := 0; k < chunks; k++ {
		if ctx.Err() != nil {
			canceled = true
			break
		}
		select {
		case jobs <- k:
		case <-ctx.Done():
			canceled = true
		}
		if canceled {
			break
		}
	}
	close(jobs)
	wg.Wait()

	if canceled {
		return nil, ctx.Err()
	}

	res := summarize(results, p.TargetCorpus)
	res.Seed = p.Seed
	return res, nil
}

// summarize sorts the end values and reads order statistics without interpolation
func summarize(results []float64, target float64) *MonteCarloResult {
	n := len(results)
	res := &MonteCarloResult{SortedResults: results, Trials: n}
	if n == 0 {
		res.SortedResults = []float64{}
		return res
	}

	sort.Float64s(results)
	res.Median = results[n/2]
	res.P10 = results[int(float64(n)*0.1)]
	res.P90 = results[int(float64(n)*0.9)]

	hits := 0
	for _, v := range results {
		if v >= target {
			hits++
		}
	}
	res.Probability = float64(hits) / float64(n) * 100
	return res
}
