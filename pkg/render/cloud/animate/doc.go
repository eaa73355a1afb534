// Package animate turns successive layouts into keyed transition plans.
//
// Words are keyed by their text. Given the previously rendered [State] and a
// new [layout.Layout], [Diff] classifies every word into one of three groups:
//
//   - Exit: rendered before, absent now. Opacity fades 1 → 0 over
//     [DefaultExitDuration], after which the word is removed.
//   - Enter: absent before, present now. The word appears at its final
//     position with font size 0 and grows to its target size over
//     [DefaultEnterDuration].
//   - Update: present in both. X and font size move from the previous values
//     to the new ones over [DefaultUpdateDuration]; Y stays constant.
//
// The package never draws anything. A [Plan] is applied to a [Surface], which
// may be an SVG writer, a terminal renderer or a [Timeline] that samples
// interpolated frames. A [Controller] owns the single rendered-state cell and
// applies each new plan, superseding whatever the previous one scheduled.
package animate
