package cnmf

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/hullnmf/hull"
)

// Factorize — Convex-Hull Convolutive NMF (CH-CNMF)
//
// Description:
//
//	Factorize decomposes a mixed-sign matrix V (m×n) into numFrames
//	convolutive frames of convex-combination bases plus one shared
//	non-negative encoding:
//
//	    V ≈ Σₜ W[t]·shift→(H, t),   W[t] = S·G[t],   t = 0..numFrames-1
//
//	S (m×p) holds anchor columns on the convex hull of the data, every
//	column of every G[t] (p×k) lies on the probability simplex, and
//	H (k×n) activates the k bases over time. Because each basis column
//	is a convex combination of actual data points, the factors stay
//	interpretable even when V carries negative entries.
//
// Algorithm Outline:
//  1. Resolve options: MaxIter/Tolerance default when non-positive,
//     Seed 0 selects the fixed default stream, nil Reconstruct selects
//     the package default. Shapes are validated; numeric content
//     (signs, NaN) deliberately is not.
//  2. Anchors: Options.SInit when provided, else hull.Points(v, numBasis).
//     p is whatever column count results.
//  3. Initialize G with Uniform(0,1) entries renormalized column-wise
//     onto the simplex and H with Uniform(0,1) entries, unless warm
//     starts are provided (warm starts are cloned, never mutated).
//  4. Precompute the split matrices of SV = Sᵀ·V and SS = Sᵀ·S:
//     Xpos = ½(|X|+X), Xneg = ½(|X|−X). Both parts are entrywise
//     non-negative, which keeps the multiplicative quotients valid on
//     mixed-sign input.
//  5. Iterate t multiplicative updates until MaxIter or convergence:
//     a. accumulate F = Σₜ G0[t]·shift→(H, t) from the snapshot;
//     b. per frame t in ascending order (Gauss–Seidel: later frames see
//     earlier updates through F):
//     G[t] = G0[t] ∘ ((SVpos+SSneg·F)·Hsᵀ) ⊘ ((SVneg+SSpos·F)·Hsᵀ + λG),
//     renormalize G[t] columns, F = max(F + (G[t]−G0[t])·Hs, 0),
//     W[t] = S·G[t];
//     c. rebuild F from the updated G and pre-update H, then update H
//     once: H = H ∘ Σₜ G[t]ᵀ·shift←(SVpos+SSneg·F, t) ⊘
//     (Σₜ G[t]ᵀ·shift←(SVneg+SSpos·F, t) + λH);
//     d. append ½‖V−V̂‖²_F to the cost trace; from the second iteration
//     stop once the cost strictly decreased by less than Tolerance
//     (an increase never stops the loop); snapshot G0 ← G.
//
// Frozen factors: GFixed skips (a), (b) and the W refresh, HFixed skips
// (c); the frozen factor is returned bit-identical to its initialization.
//
// Errors:
//   - ErrEmptyMatrix       — v nil/empty, or SInit with no columns.
//   - ErrBasisCount        — numBasis < 1.
//   - ErrFrameCount        — numFrames < 1.
//   - ErrNegativeSparsity  — GSparsity or HSparsity < 0.
//   - ErrDimensionMismatch — SInit/GInit/HInit shapes disagree with m, n,
//     p, numBasis or numFrames.
//   - ErrEmptyTensor       — GInit carries a nil frame.
//   - hull.Err*            — anchor selection failures, wrapped.
//
// Complexity:
//
//	Time   = O(MaxIter · T · p·max(k,p)·n) plus one hull selection
//	Memory = O(p·n) scratch beyond the returned factors
func Factorize(v mat.Matrix, numBasis, numFrames int, opts *Options) (*Decomposition, error) {
	cfg, err := resolveOptions(v, numBasis, numFrames, opts)
	if err != nil {
		return nil, err
	}
	m, n := v.Dims()
	k, frames := numBasis, numFrames

	// Stage 1: anchor selection. S is fixed from here on.
	var s *mat.Dense
	if cfg.sInit != nil {
		s = mat.DenseCopyOf(cfg.sInit)
	} else {
		s, err = hull.Points(v, k, hull.WithSeed(cfg.seed))
		if err != nil {
			return nil, fmt.Errorf("cnmf: anchor selection: %w", err)
		}
	}
	_, p := s.Dims()
	if err = validateInits(&cfg, n, p, k, frames); err != nil {
		return nil, err
	}

	// Stage 2: factor initialization.
	var g Tensor
	if cfg.gInit != nil {
		g = cfg.gInit.Clone()
	} else {
		g = NewTensor(frames, p, k)
		u := uniformStream(cfg.seed, rngStreamG)
		for t := range g {
			fillUniform(g[t], u)
			normalizeColumns(g[t])
		}
	}
	var h *mat.Dense
	if cfg.hInit != nil {
		h = mat.DenseCopyOf(cfg.hInit)
	} else {
		h = mat.NewDense(k, n, nil)
		fillUniform(h, uniformStream(cfg.seed, rngStreamH))
	}

	// Stage 3: split matrices of SᵀV and SᵀS (all four entrywise ≥ 0).
	sv := mat.NewDense(p, n, nil)
	sv.Mul(s.T(), v)
	ss := mat.NewDense(p, p, nil)
	ss.Mul(s.T(), s)
	svPos := mat.NewDense(p, n, nil)
	svPos.Apply(posPart, sv)
	svNeg := mat.NewDense(p, n, nil)
	svNeg.Apply(negPart, sv)
	ssPos := mat.NewDense(p, p, nil)
	ssPos.Apply(posPart, ss)
	ssNeg := mat.NewDense(p, p, nil)
	ssNeg.Apply(negPart, ss)

	// Scratch shared by all iterations; every shape is fixed for the run.
	hs := mat.NewDense(k, n, nil)      // shift→(H, t)
	acc := mat.NewDense(p, n, nil)     // per-frame term of the F accumulation
	numMix := mat.NewDense(p, n, nil)  // SVpos + SSneg·F
	denMix := mat.NewDense(p, n, nil)  // SVneg + SSpos·F
	num := mat.NewDense(p, k, nil)     // G-update numerator
	den := mat.NewDense(p, k, nil)     // G-update denominator
	diff := mat.NewDense(p, k, nil)    // G[t] − G0[t]
	f := mat.NewDense(p, n, nil)       // running accumulator F
	shifted := mat.NewDense(p, n, nil) // shift←(mix, t) in the H stage
	grad := mat.NewDense(k, n, nil)    // per-frame gradient contribution
	negGrad := mat.NewDense(k, n, nil)
	posGrad := mat.NewDense(k, n, nil)
	resid := mat.NewDense(m, n, nil)

	// Stage 4: W = S·G and the pre-loop cost.
	w := NewTensor(frames, m, k)
	for t := range w {
		w[t].Mul(s, g[t])
	}
	vhat, rerr := cfg.reconstruct(w, h)
	if rerr != nil {
		return nil, fmt.Errorf("cnmf: initial reconstruction: %w", rerr)
	}
	cost := make([]float64, 1, cfg.maxIter+1)
	cost[0] = frobCost(v, vhat, resid)
	g0 := g.Clone()

	// Stage 5: multiplicative updates.
	for iter := 1; iter <= cfg.maxIter; iter++ {
		if !cfg.gFixed {
			// (a) F from the snapshot weights and the current encoding.
			f.Zero()
			for t := range g0 {
				ShiftRightTo(hs, h, t)
				acc.Mul(g0[t], hs)
				f.Add(f, acc)
			}
			// (b) frame-sequential G update; F carries each frame's change
			// forward so later frames optimize against the fresher model.
			for t := range g {
				ShiftRightTo(hs, h, t)
				numMix.Mul(ssNeg, f)
				numMix.Add(numMix, svPos)
				denMix.Mul(ssPos, f)
				denMix.Add(denMix, svNeg)
				num.Mul(numMix, hs.T())
				den.Mul(denMix, hs.T())
				if cfg.gSparsity != 0 {
					addConst(den, cfg.gSparsity)
				}
				g[t].MulElem(g0[t], num)
				g[t].DivElem(g[t], den)
				normalizeColumns(g[t])

				diff.Sub(g[t], g0[t])
				acc.Mul(diff, hs)
				f.Add(f, acc)
				f.Apply(keepPositive, f)

				w[t].Mul(s, g[t])
			}
		}

		if !cfg.hFixed {
			// (c) F from the updated weights and the pre-update encoding,
			// then one whole-matrix H step.
			f.Zero()
			for t := range g {
				ShiftRightTo(hs, h, t)
				acc.Mul(g[t], hs)
				f.Add(f, acc)
			}
			numMix.Mul(ssNeg, f)
			numMix.Add(numMix, svPos)
			denMix.Mul(ssPos, f)
			denMix.Add(denMix, svNeg)
			negGrad.Zero()
			posGrad.Zero()
			for t := range g {
				// Right-multiplying by a left-shifted identity is exactly a
				// left column shift, and it distributes over the mixes.
				ShiftLeftTo(shifted, numMix, t)
				grad.Mul(g[t].T(), shifted)
				negGrad.Add(negGrad, grad)
				ShiftLeftTo(shifted, denMix, t)
				grad.Mul(g[t].T(), shifted)
				posGrad.Add(posGrad, grad)
			}
			if cfg.hSparsity != 0 {
				addConst(posGrad, cfg.hSparsity)
			}
			h.MulElem(h, negGrad)
			h.DivElem(h, posGrad)
		}

		// (d) cost tracking and the convergence gate.
		vhat, rerr = cfg.reconstruct(w, h)
		if rerr != nil {
			return nil, fmt.Errorf("cnmf: reconstruction at iteration %d: %w", iter, rerr)
		}
		cost = append(cost, frobCost(v, vhat, resid))
		if iter >= 2 && cost[iter] < cost[iter-1] && cost[iter-1]-cost[iter] < cfg.tol {
			break
		}
		g0.CopyFrom(g)
	}

	return &Decomposition{W: w, H: h, S: s, G: g, Cost: cost}, nil
}

// config is the immutable resolved form of Options.
type config struct {
	gFixed      bool
	hFixed      bool
	gSparsity   float64
	hSparsity   float64
	maxIter     int
	tol         float64
	seed        int64
	reconstruct Reconstructor
	sInit       *mat.Dense
	gInit       Tensor
	hInit       *mat.Dense
}

// resolveOptions validates scalar arguments and freezes the run
// configuration. Shape checks that need the anchor count p run later in
// validateInits, once S is known.
func resolveOptions(v mat.Matrix, numBasis, numFrames int, opts *Options) (config, error) {
	var cfg config
	if v == nil {
		return cfg, ErrEmptyMatrix
	}
	m, n := v.Dims()
	if m < 1 || n < 1 {
		return cfg, ErrEmptyMatrix
	}
	if numBasis < 1 {
		return cfg, ErrBasisCount
	}
	if numFrames < 1 {
		return cfg, ErrFrameCount
	}
	o := opts
	if o == nil {
		o = DefaultOptions()
	}
	if o.GSparsity < 0 || o.HSparsity < 0 {
		return cfg, ErrNegativeSparsity
	}
	if o.SInit != nil {
		sr, sc := o.SInit.Dims()
		if sc < 1 {
			return cfg, ErrEmptyMatrix
		}
		if sr != m {
			return cfg, ErrDimensionMismatch
		}
	}
	cfg = config{
		gFixed:      o.GFixed,
		hFixed:      o.HFixed,
		gSparsity:   o.GSparsity,
		hSparsity:   o.HSparsity,
		maxIter:     o.MaxIter,
		tol:         o.Tolerance,
		seed:        o.Seed,
		reconstruct: o.Reconstruct,
		sInit:       o.SInit,
		gInit:       o.GInit,
		hInit:       o.HInit,
	}
	if cfg.maxIter <= 0 {
		cfg.maxIter = DefaultMaxIter
	}
	if cfg.tol <= 0 {
		cfg.tol = DefaultTolerance
	}
	if cfg.reconstruct == nil {
		cfg.reconstruct = Reconstruct
	}
	return cfg, nil
}

// validateInits checks the warm-start shapes against the factorization
// shape. Signs and numeric content stay unchecked on purpose: the
// multiplicative rules propagate whatever the caller supplies.
func validateInits(cfg *config, n, p, k, frames int) error {
	if cfg.gInit != nil {
		if cfg.gInit.Frames() != frames {
			return ErrDimensionMismatch
		}
		for _, fr := range cfg.gInit {
			if fr == nil {
				return ErrEmptyTensor
			}
			r, c := fr.Dims()
			if r != p || c != k {
				return ErrDimensionMismatch
			}
		}
	}
	if cfg.hInit != nil {
		r, c := cfg.hInit.Dims()
		if r != k || c != n {
			return ErrDimensionMismatch
		}
	}
	return nil
}

// normalizeColumns rescales every column of a to unit sum. Zero column
// sums are not guarded; 0/0 propagates as NaN.
func normalizeColumns(a *mat.Dense) {
	r, c := a.Dims()
	for j := 0; j < c; j++ {
		var sum float64
		for i := 0; i < r; i++ {
			sum += a.At(i, j)
		}
		for i := 0; i < r; i++ {
			a.Set(i, j, a.At(i, j)/sum)
		}
	}
}

// addConst shifts every entry of a by c.
func addConst(a *mat.Dense, c float64) {
	a.Apply(func(_, _ int, v float64) float64 { return v + c }, a)
}

// posPart and negPart are the entrywise split filters ½(|x|±x); both
// yield non-negative matrices and x = posPart − negPart.
func posPart(_, _ int, v float64) float64 { return 0.5 * (math.Abs(v) + v) }

func negPart(_, _ int, v float64) float64 { return 0.5 * (math.Abs(v) - v) }

// keepPositive zeroes non-positive entries; the accumulator clamp.
func keepPositive(_, _ int, v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}
