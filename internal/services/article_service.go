package services

import (
	"errors"

	"github.com/terraincognita07/cyclecare/internal/models"
)

var ErrArticleNotFound = errors.New("article not found")

type Translator interface {
	Translate(language string, key string) string
}

type LocalizedArticle struct {
	ID       string
	Title    string
	Excerpt  string
	Content  string
	Category models.ArticleCategory
	Label    string
	Date     string
	ImageURL string
}

type ArticleService struct {
	articles   []models.Article
	translator Translator
}

func NewArticleService(translator Translator) *ArticleService {
	return &ArticleService{
		articles:   models.BuiltinArticles(),
		translator: translator,
	}
}

func (service *ArticleService) List(language string) []LocalizedArticle {
	result := make([]LocalizedArticle, 0, len(service.articles))
	for _, article := range service.articles {
		result = append(result, service.localize(article, language))
	}
	return result
}

func (service *ArticleService) Get(id string, language string) (LocalizedArticle, error) {
	for _, article := range service.articles {
		if article.ID == id {
			return service.localize(article, language), nil
		}
	}
	return LocalizedArticle{}, ErrArticleNotFound
}

func (service *ArticleService) localize(article models.Article, language string) LocalizedArticle {
	return LocalizedArticle{
		ID:       article.ID,
		Title:    service.translator.Translate(language, article.TitleKey),
		Excerpt:  service.translator.Translate(language, article.ExcerptKey),
		Content:  service.translator.Translate(language, article.ContentKey),
		Category: article.Category,
		Label:    service.translator.Translate(language, "articles.category."+string(article.Category)),
		Date:     article.Date,
		ImageURL: article.ImageURL,
	}
}
