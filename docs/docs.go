// Package docs 注册 swagger 文档模板，main 以空白导入加载，router 在 /swagger 下提供。手工维护，接口注解变化时需同步更新。
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/content/posts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts (帖子)"],
                "summary": "获取帖子信息流 (公开)",
                "parameters": [
                    {"type": "number", "description": "纬度", "name": "lat", "in": "query"},
                    {"type": "number", "description": "经度", "name": "lon", "in": "query"}
                ],
                "responses": {"200": {"description": "信息流获取成功"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts (帖子)"],
                "summary": "创建新帖子",
                "parameters": [{"description": "帖子内容", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"description": "帖子创建成功"}, "400": {"description": "无效的请求负载"}}
            }
        },
        "/api/v1/content/posts/{post_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts (帖子)"],
                "summary": "获取帖子详情",
                "parameters": [
                    {"type": "integer", "description": "帖子 ID", "name": "post_id", "in": "path", "required": true},
                    {"type": "integer", "description": "查看者用户 ID", "name": "user_id", "in": "query"}
                ],
                "responses": {"200": {"description": "帖子详情获取成功"}, "404": {"description": "帖子不存在"}}
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts (帖子)"],
                "summary": "编辑帖子",
                "parameters": [
                    {"type": "integer", "description": "帖子 ID", "name": "post_id", "in": "path", "required": true},
                    {"description": "要修改的字段", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "帖子更新成功"}, "404": {"description": "帖子不存在"}}
            },
            "delete": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts (帖子)"],
                "summary": "删除帖子",
                "parameters": [
                    {"type": "integer", "description": "帖子 ID", "name": "post_id", "in": "path", "required": true},
                    {"description": "作者 ID", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "帖子删除成功"}, "404": {"description": "帖子不存在"}}
            }
        },
        "/api/v1/content/likes": {
            "post": {"tags": ["engagement (互动)"], "summary": "点赞帖子", "responses": {"200": {"description": "点赞成功"}}},
            "delete": {"tags": ["engagement (互动)"], "summary": "取消点赞", "responses": {"200": {"description": "取消点赞成功"}}}
        },
        "/api/v1/content/bookmarks": {
            "post": {"tags": ["engagement (互动)"], "summary": "收藏帖子", "responses": {"200": {"description": "收藏成功"}}},
            "delete": {"tags": ["engagement (互动)"], "summary": "取消收藏", "responses": {"200": {"description": "取消收藏成功"}}}
        },
        "/api/v1/content/comments": {
            "post": {"tags": ["engagement (互动)"], "summary": "发表评论", "responses": {"201": {"description": "评论成功"}}}
        },
        "/api/v1/content/comments/{post_id}": {
            "get": {
                "tags": ["engagement (互动)"],
                "summary": "获取帖子评论 (新到旧)",
                "parameters": [{"type": "integer", "description": "帖子 ID", "name": "post_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "评论获取成功"}, "404": {"description": "帖子不存在"}}
            }
        },
        "/api/v1/content/articles": {
            "get": {
                "tags": ["articles (文章)"],
                "summary": "文章列表/全文检索",
                "parameters": [
                    {"type": "integer", "description": "政府 ID", "name": "government_id", "in": "query"},
                    {"type": "string", "description": "检索文本", "name": "search", "in": "query"}
                ],
                "responses": {"200": {"description": "文章检索成功"}}
            },
            "post": {"tags": ["articles (文章)"], "summary": "创建文章", "responses": {"201": {"description": "文章创建成功"}}}
        },
        "/api/v1/content/articles/{id}": {
            "get": {
                "tags": ["articles (文章)"],
                "summary": "获取指定ID的文章",
                "parameters": [{"type": "integer", "description": "文章 ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "文章获取成功"}, "404": {"description": "文章不存在"}}
            },
            "put": {
                "tags": ["articles (文章)"],
                "summary": "更新文章",
                "parameters": [{"type": "integer", "description": "文章 ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "文章更新成功"}, "404": {"description": "文章不存在"}}
            },
            "delete": {
                "tags": ["articles (文章)"],
                "summary": "删除文章",
                "parameters": [{"type": "integer", "description": "文章 ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "文章删除成功"}, "404": {"description": "文章不存在"}}
            }
        },
        "/api/v1/content/uploads": {
            "post": {
                "consumes": ["multipart/form-data"],
                "tags": ["uploads (上传)"],
                "summary": "上传文件",
                "parameters": [{"type": "file", "description": "图片文件", "name": "file", "in": "formData", "required": true}],
                "responses": {"201": {"description": "上传成功"}, "400": {"description": "缺少文件或类型/大小不合法"}, "503": {"description": "上传功能暂不可用"}}
            }
        },
        "/health": {
            "get": {"tags": ["health"], "summary": "健康检查", "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8083",
	BasePath:         "",
	Schemes:          []string{"http", "https"},
	Title:            "Content Service API",
	Description:      "公民内容服务：帖子、互动、政府文章、上传与 AI 摘要。",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
