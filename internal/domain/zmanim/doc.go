// Package zmanim contains the value types shared by the pause-window pipeline.
//
// It defines Coordinate (where the sun is observed), TimeOfDay (a clock time
// always read as "today" in the configured zone), the pause/resume triggers
// and Result, the outcome of a single evaluation.
package zmanim
