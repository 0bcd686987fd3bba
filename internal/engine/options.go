package engine

import (
	"roster-calendar/config"
	"roster-calendar/internal/roster"
)

// Keywords keyword roots matched against normalized labels and cells
type Keywords struct {
	OnCall    string
	PostCall  string
	Backup    string
	Emergency string
	Surgery   string
	Clinic    []string
	// OnCallTeam columns listed as the on-call team of an on-call entry
	OnCallTeam []string
}

// Options engine settings. New normalizes every keyword, so callers may pass
// them in any case.
type Options struct {
	// MinNameLength shortest normalized target name (in characters) that may match
	MinNameLength int
	// Placeholders cell contents that count as empty in the on-call team list
	Placeholders []string
	Keywords     Keywords
}

// OptionsFromConfig maps the engine section of the configuration.
func OptionsFromConfig(cfg *config.EngineConfig) Options {
	return Options{
		MinNameLength: cfg.MinNameLength,
		Placeholders:  cfg.Placeholders,
		Keywords: Keywords{
			OnCall:     cfg.Keywords.OnCall,
			PostCall:   cfg.Keywords.PostCall,
			Backup:     cfg.Keywords.Backup,
			Emergency:  cfg.Keywords.Emergency,
			Surgery:    cfg.Keywords.Surgery,
			Clinic:     cfg.Keywords.Clinic,
			OnCallTeam: cfg.OnCallTeamKeywords,
		},
	}
}

// DefaultOptions the options of the default configuration.
func DefaultOptions() Options {
	return OptionsFromConfig(&config.Default().Engine)
}

func (o Options) normalized() Options {
	if o.MinNameLength < 1 {
		o.MinNameLength = 3
	}
	o.Placeholders = roster.NormalizeAll(o.Placeholders)

	k := &o.Keywords
	k.OnCall = roster.Normalize(k.OnCall)
	k.PostCall = roster.Normalize(k.PostCall)
	k.Backup = roster.Normalize(k.Backup)
	k.Emergency = roster.Normalize(k.Emergency)
	k.Surgery = roster.Normalize(k.Surgery)
	k.Clinic = roster.NormalizeAll(k.Clinic)
	k.OnCallTeam = roster.NormalizeAll(k.OnCallTeam)
	return o
}

func (o Options) columnKeywords() roster.ColumnKeywords {
	return roster.ColumnKeywords{
		OnCallTeam: o.Keywords.OnCallTeam,
		PostCall:   o.Keywords.PostCall,
		OnCall:     o.Keywords.OnCall,
		Surgery:    o.Keywords.Surgery,
	}
}

func (o Options) isPlaceholder(normalized string) bool {
	for _, p := range o.Placeholders {
		if normalized == p {
			return true
		}
	}
	return false
}
