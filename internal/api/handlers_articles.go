package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) ListArticles(c *fiber.Ctx) error {
	articles := handler.articles.List(currentLanguage(c))
	views := make([]articleView, 0, len(articles))
	for _, article := range articles {
		views = append(views, newArticleView(article, false))
	}
	return c.JSON(views)
}

func (handler *Handler) GetArticle(c *fiber.Ctx) error {
	article, err := handler.articles.Get(c.Params("id"), currentLanguage(c))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(newArticleView(article, true))
}
