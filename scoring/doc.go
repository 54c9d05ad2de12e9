// Package scoring measures the ink in each bubble of a question row and
// decides which option, if any, was marked.
//
// The score of a bubble is [InkCount]: the number of ink pixels inside the
// bubble's filled outline. A [Policy] turns a row of scores into a decision.
// The default [FirstMax] picks the highest score if it exceeds an absolute
// threshold, preferring the leftmost option on a tie. [NearTie] also
// reports rows where two options are almost equally inked as [Ambiguous].
package scoring
