package scanner

// ScanEvent reports progress for a single probed link.
type ScanEvent struct {
	URL     string
	Status  int
	Working bool
	Checked int
	Total   int
}

// emit sends an event to the progress channel when one is configured.
func (s *Scanner) emit(evt ScanEvent) {
	if s.progressCh != nil {
		s.progressCh <- evt
	}
}
