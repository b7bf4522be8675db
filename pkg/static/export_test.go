package static

// CloseListenerForTest closes the bound socket behind the server's back, so
// Serve fails with an accept error instead of stopping gracefully.
func (s *Server) CloseListenerForTest() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.listener.Close()
}
