package cmd

// DefaultProjectConfigFilename describes the default config filename for a given project folder.
const DefaultProjectConfigFilename = "cinder.json"

// DefaultCampaignEpisodes describes the number of episodes the baseline random campaign runs when none is specified.
const DefaultCampaignEpisodes = 10
