package config

const (
	KeyRedditClientID     = "reddit_client_id"
	KeyRedditClientSecret = "reddit_client_secret"
	KeyRedditUserAgent    = "reddit_user_agent"
	KeyRedditBaseURL      = "reddit_base_url"
	KeyBigQueryProject    = "bigquery_project"
	KeyBigQueryDataset    = "bigquery_dataset"
	KeyBigQueryCredFile   = "bigquery_credentials_file"
	KeyLogLevel           = "log_level"
	KeyHTTPTimeout        = "http_timeout"
)
