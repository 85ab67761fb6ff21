package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/brianvoe/gofakeit/v6"
	"go.uber.org/zap"

	"github.com/Xushengqwer/content_service/models/dto"
	"github.com/Xushengqwer/content_service/service"
)

const concurrencyLimit = 10

var postCategories = []string{"roads", "lighting", "sanitation", "parks", "water", "general"}

type seeder struct {
	posts      service.PostService
	engagement service.EngagementService
	articles   service.ArticleService
	logger     *zap.Logger
}

func (s *seeder) seedPosts(ctx context.Context, numPosts int) {
	s.logger.Info("开始填充帖子 (通过服务层)...", zap.Int("数量", numPosts))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrencyLimit)

	for i := 0; i < numPosts; i++ {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(itemIndex int) {
			defer wg.Done()
			defer func() { <-semaphore }()

			lat := gofakeit.Latitude()
			lon := gofakeit.Longitude()
			req := &dto.CreatePostRequest{
				UserID:    uint64(gofakeit.Number(1, 500)),
				Title:     gofakeit.Sentence(gofakeit.Number(4, 10)),
				Content:   gofakeit.Paragraph(2, 4, 15, "\n\n"),
				Category:  gofakeit.RandomString(postCategories),
				Location:  gofakeit.City(),
				Latitude:  &lat,
				Longitude: &lon,
				Media: []dto.MediaRef{{
					MediaURL: gofakeit.ImageURL(640, 480),
				}},
			}

			detail, err := s.posts.CreatePost(ctx, req)
			if err != nil {
				s.logger.Error(fmt.Sprintf("创建帖子 %d/%d 失败", itemIndex+1, numPosts), zap.Error(err))
				return
			}
			s.seedEngagement(ctx, detail.ID)
		}(i)
	}

	wg.Wait()
	s.logger.Info("帖子填充完毕。")
}

// seedEngagement 给帖子随机生成点赞、收藏与评论
func (s *seeder) seedEngagement(ctx context.Context, postID uint64) {
	for j := 0; j < gofakeit.Number(0, 8); j++ {
		req := &dto.EngagementRequest{UserID: uint64(gofakeit.Number(1, 500)), PostID: postID}
		if _, err := s.engagement.Like(ctx, req); err != nil {
			s.logger.Warn("生成点赞失败", zap.Uint64("postID", postID), zap.Error(err))
		}
		if gofakeit.Bool() {
			if _, err := s.engagement.Bookmark(ctx, req); err != nil {
				s.logger.Warn("生成收藏失败", zap.Uint64("postID", postID), zap.Error(err))
			}
		}
	}
	for j := 0; j < gofakeit.Number(0, 3); j++ {
		req := &dto.CreateCommentRequest{
			UserID:  uint64(gofakeit.Number(1, 500)),
			PostID:  postID,
			Content: gofakeit.Sentence(gofakeit.Number(3, 12)),
		}
		if j == 0 && gofakeit.Bool() {
			dept := uint64(gofakeit.Number(1, 20))
			name := gofakeit.Company() + " Department"
			req.IsOfficial = true
			req.DepartmentID = &dept
			req.DepartmentName = &name
		}
		if _, err := s.engagement.AddComment(ctx, req); err != nil {
			s.logger.Warn("生成评论失败", zap.Uint64("postID", postID), zap.Error(err))
		}
	}
}

func (s *seeder) seedArticles(ctx context.Context, numArticles, numGovs int) {
	s.logger.Info("开始填充文章...", zap.Int("数量", numArticles))
	for i := 0; i < numArticles; i++ {
		content, _ := json.Marshal(map[string]any{
			"type": "doc",
			"content": []map[string]any{{
				"type":    "paragraph",
				"content": []map[string]string{{"type": "text", "text": gofakeit.Paragraph(1, 3, 12, " ")}},
			}},
		})
		images, _ := json.Marshal([]string{gofakeit.ImageURL(800, 600)})
		req := &dto.CreateArticleRequest{
			GovernmentID: uint64(gofakeit.Number(1, numGovs)),
			Title:        gofakeit.Sentence(gofakeit.Number(3, 8)),
			Summary:      gofakeit.Sentence(gofakeit.Number(10, 20)),
			Content:      content,
			Images:       images,
		}
		if _, err := s.articles.CreateArticle(ctx, req); err != nil {
			s.logger.Error(fmt.Sprintf("创建文章 %d/%d 失败", i+1, numArticles), zap.Error(err))
		}
	}
	s.logger.Info("文章填充完毕。")
}
