package api

import (
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
)

const apiVersion = "1.0.0"

type endpoint struct {
	method  string
	path    string
	summary string
	tag     string
	body    *openapi3.Schema
	params  []*openapi3.Parameter
}

func codeSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("code", openapi3.NewStringSchema()).
		WithProperty("model_choice", openapi3.NewStringSchema().WithDefault("gpt-4o")).
		WithRequired([]string{"code"})
}

func endpoints() []endpoint {
	idParam := openapi3.NewPathParameter("id").WithSchema(openapi3.NewStringSchema())

	eps := make([]endpoint, 0, len(analysisRoutes)+12)
	for _, route := range analysisRoutes {
		eps = append(eps, endpoint{
			method:  http.MethodPost,
			path:    "/api/v1/analyze/" + route.path,
			summary: "Run " + string(route.kind) + " analysis on a code sample",
			tag:     "analysis",
			body:    codeSchema(),
		})
	}

	chat := codeSchema().
		WithProperty("question", openapi3.NewStringSchema()).
		WithProperty("session_id", openapi3.NewStringSchema()).
		WithRequired([]string{"question"})
	projectChat := openapi3.NewObjectSchema().
		WithProperty("question", openapi3.NewStringSchema()).
		WithProperty("file_index", openapi3.NewIntegerSchema().WithNullable()).
		WithProperty("session_id", openapi3.NewStringSchema().WithDefault("default")).
		WithProperty("model_choice", openapi3.NewStringSchema().WithDefault("gpt-4o")).
		WithRequired([]string{"question"})
	fileAnalysis := openapi3.NewObjectSchema().
		WithProperty("file_index", openapi3.NewIntegerSchema()).
		WithProperty("analysis_type", openapi3.NewStringSchema().WithEnum("bugs", "optimize", "explain", "tests", "edge-cases")).
		WithProperty("model_choice", openapi3.NewStringSchema().WithDefault("gpt-4o")).
		WithRequired([]string{"file_index", "analysis_type"})
	github := openapi3.NewObjectSchema().
		WithProperty("repo_url", openapi3.NewStringSchema()).
		WithProperty("model_choice", openapi3.NewStringSchema()).
		WithRequired([]string{"repo_url"})
	gitlab := openapi3.NewObjectSchema().
		WithProperty("project", openapi3.NewStringSchema()).
		WithProperty("ref", openapi3.NewStringSchema()).
		WithProperty("base_url", openapi3.NewStringSchema()).
		WithProperty("token", openapi3.NewStringSchema()).
		WithRequired([]string{"project"})

	return append(eps,
		endpoint{method: http.MethodPost, path: "/api/v1/conversational/chat", summary: "Ask a question about a code sample", tag: "conversational", body: chat},
		endpoint{method: http.MethodPost, path: "/api/v1/conversational/{id}/chat", summary: "Ask a question about a project or one of its files", tag: "conversational", body: projectChat, params: []*openapi3.Parameter{idParam}},
		endpoint{method: http.MethodGet, path: "/api/v1/conversational/{id}/history", summary: "Read the stored exchanges of a session", tag: "conversational", params: []*openapi3.Parameter{idParam}},
		endpoint{method: http.MethodGet, path: "/api/v1/projects", summary: "List stored projects", tag: "projects"},
		endpoint{method: http.MethodPost, path: "/api/v1/projects/upload", summary: "Upload a ZIP archive of Python sources", tag: "projects"},
		endpoint{method: http.MethodPost, path: "/api/v1/projects/github", summary: "Import a public GitHub repository", tag: "projects", body: github},
		endpoint{method: http.MethodGet, path: "/api/v1/projects/github/validate", summary: "Check that a GitHub repository exists and is public", tag: "projects",
			params: []*openapi3.Parameter{openapi3.NewQueryParameter("repo_url").WithRequired(true).WithSchema(openapi3.NewStringSchema())}},
		endpoint{method: http.MethodPost, path: "/api/v1/projects/gitlab", summary: "Import a GitLab repository archive", tag: "projects", body: gitlab},
		endpoint{method: http.MethodGet, path: "/api/v1/projects/{id}", summary: "Describe a project and its files", tag: "projects", params: []*openapi3.Parameter{idParam}},
		endpoint{method: http.MethodDelete, path: "/api/v1/projects/{id}", summary: "Delete a project", tag: "projects", params: []*openapi3.Parameter{idParam}},
		endpoint{method: http.MethodPost, path: "/api/v1/projects/{id}/analyze", summary: "Analyse one file of a project", tag: "projects", body: fileAnalysis, params: []*openapi3.Parameter{idParam}},
		endpoint{method: http.MethodGet, path: "/api/v1/models", summary: "List configured providers and models", tag: "models"},
	)
}

// buildOpenAPI describes every /api/v1 route. Bearer auth is declared when
// tokens are required.
func buildOpenAPI(secured bool) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "AI Code Review API",
			Description: "Category-aware code analysis backed by large language models",
			Version:     apiVersion,
		},
		Paths: openapi3.NewPaths(),
	}
	if secured {
		doc.Components = &openapi3.Components{
			SecuritySchemes: openapi3.SecuritySchemes{
				"bearerAuth": &openapi3.SecuritySchemeRef{Value: openapi3.NewJWTSecurityScheme()},
			},
		}
		doc.Security = *openapi3.NewSecurityRequirements().With(openapi3.NewSecurityRequirement().Authenticate("bearerAuth"))
	}

	errorSchema := openapi3.NewObjectSchema().
		WithProperty("status", openapi3.NewStringSchema()).
		WithProperty("error", openapi3.NewStringSchema())

	for _, ep := range endpoints() {
		op := openapi3.NewOperation()
		op.Summary = ep.summary
		op.Tags = []string{ep.tag}
		op.OperationID = operationID(ep.method, ep.path)
		for _, p := range ep.params {
			op.AddParameter(p)
		}
		if ep.body != nil {
			op.RequestBody = &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(ep.body)}
		}
		op.AddResponse(http.StatusOK, openapi3.NewResponse().WithDescription("Success").WithJSONSchema(openapi3.NewObjectSchema()))
		op.AddResponse(http.StatusBadRequest, openapi3.NewResponse().WithDescription("Invalid request").WithJSONSchema(errorSchema))
		op.AddResponse(http.StatusInternalServerError, openapi3.NewResponse().WithDescription("Analysis failed").WithJSONSchema(errorSchema))

		item := doc.Paths.Value(ep.path)
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths.Set(ep.path, item)
		}
		switch ep.method {
		case http.MethodGet:
			item.Get = op
		case http.MethodPost:
			item.Post = op
		case http.MethodDelete:
			item.Delete = op
		}
	}
	return doc
}

func operationID(method, path string) string {
	parts := []string{strings.ToLower(method)}
	for _, seg := range strings.Split(strings.TrimPrefix(path, "/api/v1/"), "/") {
		seg = strings.Trim(seg, "{}")
		parts = append(parts, strings.ReplaceAll(seg, "-", "_"))
	}
	return strings.Join(parts, "_")
}

func (s *Server) openAPI(c echo.Context) error {
	return c.JSON(http.StatusOK, buildOpenAPI(s.deps.Tokens != nil && s.deps.Tokens.Enabled()))
}
