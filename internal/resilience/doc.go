// Package resilience groups the fault tolerance helpers used around every
// outbound call the aggregator makes: the news provider, the bookmark store
// and the notification channels.
//
//	cb := circuitbreaker.New(circuitbreaker.NewsAPIConfig())
//	page, err := circuitbreaker.Run(cb, func() (*feed.Page, error) {
//	    return provider.Fetch(ctx, q)
//	})
//
//	err := retry.WithBackoff(ctx, retry.UpstreamConfig(), func() error {
//	    return ping(ctx)
//	})
package resilience
