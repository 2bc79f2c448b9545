// Package extractor provides the incremental document extraction loop.
//
// A run computes how many new documents are needed to reach the target,
// searches every configured keyword, shuffles the matching cases and then
// visits them one by one until enough new documents are saved or the cases
// run out.
//
// Architecture:
//
// The Extractor ties together:
//   - SearchAggregator: one search per keyword, merged into a set of cases
//   - CaseFilter: wanted, unsealed entries with a document id, in docket order
//   - quota.Tracker: optional per-type minimums so no type is starved
//   - Downloader: dedup against the on-disk index, then resolve, fetch, save
//
// Usage:
//
//	index, _ := storage.Scan(cfg.Output.BaseDirectory)
//	run := stats.New()
//	client := dawson.NewClient(&cfg.API, limiter, run, log)
//
//	ex, err := extractor.New(client, store, index, run, &cfg.Extraction)
//	summary, err := ex.Run(ctx, cfg.Extraction.NumOrders)
//
// Failures never abort a run: a failed search yields no cases, a failed
// docket fetch skips the case and a failed download moves on to the next
// candidate. Every run ends with a Summary.
package extractor
