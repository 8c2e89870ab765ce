// Package hullnmf is your in-memory toolbox for decomposing mixed-sign
// matrices into convex combinations of their own extreme points — a
// convex-hull flavored convolutive NMF, pure Go on gonum.
//
// 🚀 What is hullnmf?
//
//	A deterministic, dependency-light numeric library that brings together:
//		• Convex-hull anchor discovery: eigenplane projections + 2D hulls
//		• Convolutive factorization: V ≈ Σₜ W[:,:,t]·shift(H, t)
//		• Multiplicative updates that keep every basis vector a convex
//		  combination of real data columns
//		• Opt-in k-means seeding for the encoding matrix
//
// ✨ Why choose hullnmf?
//
//   - Mixed-sign ready – positive/negative split matrices let the
//     multiplicative rules run on data NMF normally rejects
//   - Interpretable – every learned basis lives inside the hull of V,
//     so it looks like your data, not like an abstract direction
//   - Reproducible – fixed default seeds, explicit Seed options
//   - Pure Go – gonum under the hood, no cgo
//
// Under the hood, everything is organized under three subpackages:
//
//	cnmf/   — the optimizer: Factorize, Reconstruct, shift utilities
//	hull/   — convex-hull anchor selection (eigenplanes, truncated eig)
//	kmeans/ — Lloyd clustering + one-hot encoding init for H
//
// Quick sketch of the model:
//
//	V (m×n) ≈ Σₜ  S·G[:,:,t] · shift→(H, t)
//	              └── anchors × convex weights, per frame
//
// Dive into the package docs for the update rules, contracts and
// complexity notes.
//
//	go get github.com/katalvlaran/hullnmf/cnmf
package hullnmf
