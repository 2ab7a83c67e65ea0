// Package fit chooses which layout variant fills a canvas best.
//
// # Algorithm
//
// A minimum margin of min(width, height)/8 is reserved on every side of the
// canvas. Each variant is scaled uniformly to the largest size that fits the
// remaining interior rectangle, then centered in the full canvas. The
// variant's score is its total margin, 2·x + 2·y, where (x, y) is the
// top-left corner of the scaled variant. The lowest score wins; on a tie the
// variant registered first wins.
//
// Every variant is evaluated; there is no early exit. Because a single axis
// always limits the scale, the limiting axis sits exactly on the minimum
// margin and the other axis absorbs the slack, which is what the score
// penalizes.
//
//	plan := fit.Select(variant.Default().List(), 1280, 640)
//	fmt.Println(plan.Variant.Name, plan.Scale, plan.TotalMargin)
//
// # Degenerate canvases
//
// [Select] is total: it never fails. Non-positive or non-finite sizes yield a
// plan with a non-positive or non-finite scale, which [Plan.Valid] reports as
// a configuration error. Callers check validity before composing.
package fit
