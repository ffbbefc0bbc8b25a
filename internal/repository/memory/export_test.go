package memory

// LinkCount reports the number of candidate-skill rows, checking that both
// indexes agree.
func LinkCount(s *Store) (byCandidate, bySkill int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, skills := range s.skillsByCandidate {
		byCandidate += len(skills)
	}
	for _, candidates := range s.candidatesBySkill {
		bySkill += len(candidates)
	}
	return byCandidate, bySkill
}
