package app

// Recent returns the recently opened files, most recent first.
func (s Service) Recent(req RecentRequest) ([]string, error) {
	cfg, err := s.Config.Load()
	if err != nil {
		return nil, err
	}
	if req.Clear {
		cfg.RecentFiles = nil
		if err := s.Config.Save(cfg); err != nil {
			return nil, err
		}
	}
	return cfg.RecentFiles, nil
}
