// SPDX-License-Identifier: MIT

// Package simulation runs the one-sequence pipeline:
//
//	load parameters → build Hamiltonian → build dissipator →
//	integrate → evaluate → persist
//
// A Runner owns the boundary concerns the core packages stay free of: it
// logs stage boundaries to an injected *log.Logger, opens one trace span
// per stage, and retries the persistence step with bounded exponential
// backoff. Parameter-source retries belong to the source itself (wrap it
// in params.NewRetrying).
//
// Usage:
//
//	r := simulation.New(params.NewRetrying(params.NewFileSource(dir)),
//		simulation.WithStore(st), simulation.WithLogger(logger))
//	res, err := r.Run(ctx, simulation.Request{Upper: "GCG", Model: topology.ELM, Save: true})
package simulation
