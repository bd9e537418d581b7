package feed

const (
	defaultSocialLimit    = 15
	defaultCommunityLimit = 10
	defaultLimit          = 20
)

type Config struct {
	// rows fetched from followed authors
	SocialLimit int
	// rows fetched from everyone else
	CommunityLimit int
	// page size when the caller does not pass one
	DefaultLimit int
}

func DefaultConfig() Config {
	return Config{
		SocialLimit:    defaultSocialLimit,
		CommunityLimit: defaultCommunityLimit,
		DefaultLimit:   defaultLimit,
	}
}

// withDefaults fills non-positive fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SocialLimit <= 0 {
		c.SocialLimit = d.SocialLimit
	}
	if c.CommunityLimit <= 0 {
		c.CommunityLimit = d.CommunityLimit
	}
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = d.DefaultLimit
	}
	return c
}
