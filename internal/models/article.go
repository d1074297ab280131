package models

type ArticleCategory string

const (
	ArticleCategoryPeriodBasics    ArticleCategory = "period_basics"
	ArticleCategorySexualHealth    ArticleCategory = "sexual_health"
	ArticleCategoryMentalWellbeing ArticleCategory = "mental_wellbeing"
)

type Article struct {
	ID         string
	Category   ArticleCategory
	Date       string
	ImageURL   string
	TitleKey   string
	ExcerptKey string
	ContentKey string
}

func BuiltinArticles() []Article {
	return []Article{
		{
			ID:         "1",
			Category:   ArticleCategoryPeriodBasics,
			Date:       "2024-05-20",
			ImageURL:   "https://picsum.photos/seed/period/400/200",
			TitleKey:   "articles.cramps_guide.title",
			ExcerptKey: "articles.cramps_guide.excerpt",
			ContentKey: "articles.cramps_guide.content",
		},
		{
			ID:         "2",
			Category:   ArticleCategorySexualHealth,
			Date:       "2024-05-18",
			ImageURL:   "https://picsum.photos/seed/health/400/200",
			TitleKey:   "articles.contraception.title",
			ExcerptKey: "articles.contraception.excerpt",
			ContentKey: "articles.contraception.content",
		},
		{
			ID:         "3",
			Category:   ArticleCategoryMentalWellbeing,
			Date:       "2024-05-15",
			ImageURL:   "https://picsum.photos/seed/mood/400/200",
			TitleKey:   "articles.mood_cycle.title",
			ExcerptKey: "articles.mood_cycle.excerpt",
			ContentKey: "articles.mood_cycle.content",
		},
	}
}
