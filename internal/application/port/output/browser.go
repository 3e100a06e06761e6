package output

import "context"

// BrowserPort is an opened page whose document can be searched.
type BrowserPort interface {
	Navigate(ctx context.Context, url string) error
	Document(ctx context.Context) (SearchContext, error)
	CurrentURL() string
	Close()
}
