// Package analysis derives statistics from Moran trajectories.
//
// The package covers the summaries a study of drift and selection needs:
//
//   - [SummarizeLifetimes]: descriptive statistics of lifetimes at death
//   - [LifetimeHistogram]: equal-width binning with density and cumulative forms
//   - [FrequencyTrend]: least-squares slope of the frequency of A per step
//   - [Downsample]: thinning a series for terminal plots
//
// # Time Scales
//
// One Moran step is one birth-death event, so N steps make one generation:
//
//	s := analysis.SummarizeLifetimes(lifetimes, 2000)
//	fmt.Println(s.MeanGenerations(), s.MeanMinutes(20))
package analysis
