package model

import "context"

// MinimizeEarliestSlots re-solves after an initial feasible Check,
// greedily narrowing each session's slot domain (in session order) to
// values no larger than its current solution value, keeping the narrowing
// only if the model remains satisfiable (spec.md §4.4 "Objective": basic
// mode prefers earlier slot indices). This is the lexicographic re-solve
// SPEC_FULL.md §4.4 describes, not a true optimal minimisation — it
// improves monotonically and terminates, but a later session's domain can
// still be forced wide open by an earlier session's greedy choice.
func (m *Model) MinimizeEarliestSlots(ctx context.Context) error {
	for i := range m.Sessions {
		for {
			result, err := m.Engine.Check(ctx)
			if err != nil {
				return err
			}
			if !result.Satisfiable {
				return nil
			}
			currentValue := result.Value(m.SlotVar[i])

			snap := m.Engine.SnapshotDomains()
			m.Engine.ShrinkDomain(m.SlotVar[i], currentValue-1)
			retry, err := m.Engine.Check(ctx)
			if err != nil {
				m.Engine.RestoreDomains(snap)
				return err
			}
			if !retry.Satisfiable {
				m.Engine.RestoreDomains(snap)
				break
			}
		}
	}
	return nil
}
