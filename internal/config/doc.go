// SPDX-License-Identifier: MIT

// Package config loads application-level settings for the qdna CLI and
// pipeline.
//
// Two layers:
//
//   - Defaults: simulation defaults (ham, diss, me sections) read from an
//     optional YAML file through viper, with QDNA_ environment overrides
//     such as QDNA_ME_T_END=500.
//   - Env: runtime settings (parameter directory, store backend, tracing
//     endpoint) parsed from the environment with caarlos0/env.
//
// Library packages never read either; they receive options built here.
package config
