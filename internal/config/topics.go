package config

// DefaultTopics is the built-in feed table: the seven fixed news categories
// and the RSS feeds that supply each of them.
func DefaultTopics() []TopicFeeds {
	return []TopicFeeds{
		{
			Name: "Tech",
			URLs: []string{
				"https://techcrunch.com/feed/",
				"https://www.theverge.com/rss/index.xml",
				"https://hnrss.org/frontpage",
				"https://feeds.arstechnica.com/arstechnica/technology-lab",
				"https://www.wired.com/feed/rss",
			},
		},
		{
			Name: "AI",
			URLs: []string{
				"https://techcrunch.com/category/artificial-intelligence/feed/",
				"https://www.wired.com/feed/tag/ai/latest/rss",
				"https://www.theverge.com/rss/ai-artificial-intelligence/index.xml",
			},
		},
		{
			Name: "Finance",
			URLs: []string{
				"https://finance.yahoo.com/news/rssindex",
				"https://www.investing.com/rss/news.rss",
				"https://feeds.marketwatch.com/marketwatch/topstories/",
				"https://www.cnbc.com/id/100003114/device/rss/rss.html",
				"https://moxie.foxbusiness.com/google-publisher/latest.xml",
			},
		},
		{
			Name: "World News",
			URLs: []string{
				"https://feeds.npr.org/1004/rss.xml",
				"https://news.google.com/rss/search?q=site:reuters.com&hl=en-US&gl=US&ceid=US:en",
				"https://www.theguardian.com/world/rss",
				"https://feeds.bbci.co.uk/news/rss.xml",
			},
		},
		{
			Name: "Business",
			URLs: []string{
				"https://feeds.washingtonpost.com/rss/business",
				"https://moxie.foxbusiness.com/google-publisher/latest.xml",
				"https://feeds.bbci.co.uk/news/business/rss.xml",
				"https://www.cnbc.com/id/10001147/device/rss/rss.html",
			},
		},
		{
			Name: "Stock Market",
			URLs: []string{
				"https://feeds.finance.yahoo.com/rss/2.0/headline?s=^GSPC,^DJI,^IXIC&region=US&lang=en-US",
				"https://feeds.marketwatch.com/marketwatch/topstories/",
				"https://www.investing.com/rss/news.rss",
				"https://www.cnbc.com/id/15839135/device/rss/rss.html",
			},
		},
		{
			Name: "Crypto",
			URLs: []string{
				"https://cointelegraph.com/rss",
				"https://www.coindesk.com/arc/outboundfeeds/rss/",
				"https://decrypt.co/feed",
			},
		},
	}
}
