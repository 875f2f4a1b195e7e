// Package trend fits a linear trend to a yearly series and derives the
// in-sample diagnostics used for anomaly flagging: fitted values, residual
// z-scores, year-over-year growth and its z-score, plus the trend and naive
// forecasts at a fixed target year.
package trend
