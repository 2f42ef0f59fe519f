package bookmark

import "newsdesk/internal/domain/entity"

// SampleArticles is the demo data set served by GET /add-test-articles.
// PublishedAt is left zero and filled with the seeding time.
func SampleArticles() []*entity.Article {
	return []*entity.Article{
		{
			Title:       "SpaceX Successfully Launches New Satellite",
			Description: "SpaceX's Falcon 9 rocket successfully launched a new communications satellite into orbit on Thursday.",
			URL:         "https://example.com/spacex-launch",
			URLToImage:  "https://images.unsplash.com/photo-1516849841032-87cbac4d88f7",
			Source:      entity.Source{ID: "space-news", Name: "Space News"},
			Author:      "John Smith",
			Category:    "technology",
		},
		{
			Title:       "New AI Breakthrough in Medical Research",
			Description: "Scientists announce major breakthrough in using AI for early disease detection.",
			URL:         "https://example.com/ai-medical",
			URLToImage:  "https://images.unsplash.com/photo-1532187863486-abf9dbad1b69",
			Source:      entity.Source{ID: "tech-daily", Name: "Tech Daily"},
			Author:      "Sarah Johnson",
			Category:    "science",
		},
		{
			Title:       "Global Climate Summit Reaches Historic Agreement",
			Description: "World leaders agree on ambitious new climate targets at international summit.",
			URL:         "https://example.com/climate-summit",
			URLToImage:  "https://images.unsplash.com/photo-1569163139599-0f4517e36f51",
			Source:      entity.Source{ID: "world-news", Name: "World News"},
			Author:      "Michael Brown",
			Category:    "environment",
		},
	}
}

// FixtureArticles is the minimal fixture served by POST /api/add-test-articles.
func FixtureArticles() []*entity.Article {
	return []*entity.Article{
		{
			Title:       "Test Article 1",
			Description: "This is a test article 1",
			URL:         "https://example.com/1",
			URLToImage:  "https://example.com/image1.jpg",
			Author:      "Test Author 1",
			Source:      entity.Source{Name: "Test Source 1"},
		},
		{
			Title:       "Test Article 2",
			Description: "This is a test article 2",
			URL:         "https://example.com/2",
			URLToImage:  "https://example.com/image2.jpg",
			Author:      "Test Author 2",
			Source:      entity.Source{Name: "Test Source 2"},
		},
	}
}
