package projects_enums

type GithubSyncStatus string

const (
	// GithubSyncStatusPending means the repository has not been created yet.
	GithubSyncStatusPending GithubSyncStatus = "PENDING"
	GithubSyncStatusSynced  GithubSyncStatus = "SYNCED"
)

type ExternalLinkType string

const (
	ExternalLinkTypeGithub   ExternalLinkType = "GITHUB"
	ExternalLinkTypeTwitter  ExternalLinkType = "TWITTER"
	ExternalLinkTypeLinkedin ExternalLinkType = "LINKEDIN"
	ExternalLinkTypeDiscord  ExternalLinkType = "DISCORD"
	ExternalLinkTypeWebsite  ExternalLinkType = "WEBSITE"
	ExternalLinkTypeOther    ExternalLinkType = "OTHER"
)

func (t ExternalLinkType) IsValid() bool {
	switch t {
	case ExternalLinkTypeGithub,
		ExternalLinkTypeTwitter,
		ExternalLinkTypeLinkedin,
		ExternalLinkTypeDiscord,
		ExternalLinkTypeWebsite,
		ExternalLinkTypeOther:
		return true
	}
	return false
}
