package api

import (
	"encoding/json"                          // Variables in query strings
	"net/http"                               // HTTP status codes
	"reservation_system/internal/apperr"     // Application error kinds
	"reservation_system/internal/middleware" // GraphQL error bodies

	"github.com/gin-gonic/gin"                      // Gin web framework
	"github.com/graphql-go/graphql"                 // GraphQL execution
	"github.com/graphql-go/graphql/language/ast"    // Operation kinds
	"github.com/graphql-go/graphql/language/parser" // Query parsing
)

// GraphQLRequest is a GraphQL over HTTP request
type GraphQLRequest struct {
	Query         string                 `json:"query" form:"query"`                 // Query document
	Variables     map[string]interface{} `json:"variables"`                          // Variable values
	OperationName string                 `json:"operationName" form:"operationName"` // Operation to run
}

// GraphQLHandler executes queries from a JSON body (POST) or the query string (GET)
func GraphQLHandler(schema graphql.Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GraphQLRequest
		if c.Request.Method == http.MethodGet {
			req.Query = c.Query("query")
			req.OperationName = c.Query("operationName")
			if raw := c.Query("variables"); raw != "" {
				if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
					middleware.AbortWithGraphQLError(c, http.StatusBadRequest, apperr.New(apperr.Validation, "Variables are invalid JSON."))
					return
				}
			}
		} else if err := c.ShouldBindJSON(&req); err != nil {
			middleware.AbortWithGraphQLError(c, http.StatusBadRequest, apperr.New(apperr.Validation, "POST body is not valid JSON."))
			return
		}
		if req.Query == "" {
			middleware.AbortWithGraphQLError(c, http.StatusBadRequest, apperr.New(apperr.Validation, "Must provide query string."))
			return
		}
		// GET must not change state
		if c.Request.Method == http.MethodGet && isMutation(req.Query, req.OperationName) {
			middleware.AbortWithGraphQLError(c, http.StatusMethodNotAllowed, apperr.New(apperr.Validation, "Mutations are only allowed over POST."))
			return
		}
		result := graphql.Do(graphql.Params{
			Schema:         schema,              // Reservation schema
			RequestString:  req.Query,           // Query document
			VariableValues: req.Variables,       // Variable values
			OperationName:  req.OperationName,   // Selected operation
			Context:        c.Request.Context(), // Carries the caller identity
		})
		c.JSON(http.StatusOK, result)
	}
}

// isMutation reports whether the selected operation of query is a mutation.
// Unparseable documents return false and fail later in execution.
func isMutation(query, operationName string) bool {
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return false
	}
	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if operationName != "" && (op.Name == nil || op.Name.Value != operationName) {
			continue
		}
		if op.Operation == ast.OperationTypeMutation {
			return true
		}
	}
	return false
}
