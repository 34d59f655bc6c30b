package http

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"freightops/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi/openapi.yaml
var openAPIDocument []byte

// LoadOpenAPI parses and validates the embedded API description.
func LoadOpenAPI() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// RequestValidator checks parameters and bodies against the operation echo
// matched. Routes missing from the document pass through untouched.
func RequestValidator(doc *openapi3.T) echo.MiddlewareFunc {
	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := openAPIPath(c.Path())
			item := doc.Paths.Value(path)
			if item == nil {
				return next(c)
			}
			req := c.Request()
			operation := item.GetOperation(req.Method)
			if operation == nil {
				return next(c)
			}

			pathParams := make(map[string]string, len(c.ParamNames()))
			for _, name := range c.ParamNames() {
				pathParams[name] = c.Param(name)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route: &routers.Route{
					Spec:      doc,
					Path:      path,
					PathItem:  item,
					Method:    req.Method,
					Operation: operation,
				},
				Options: options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return errs.NewValueIsInvalidErrorWithCause("request", err)
			}
			return next(c)
		}
	}
}

// openAPIPath turns echo's "/shipments/:shipmentId" into "/shipments/{shipmentId}".
func openAPIPath(route string) string {
	segments := strings.Split(route, "/")
	for i, segment := range segments {
		if name, ok := strings.CutPrefix(segment, ":"); ok {
			segments[i] = "{" + name + "}"
		}
	}
	return strings.Join(segments, "/")
}

type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

var registerSwaggerOnce sync.Once

// RegisterSwaggerDoc publishes the document to the swag registry read by the
// /swagger UI. Only the first call registers.
func RegisterSwaggerDoc(doc *openapi3.T) error {
	data, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal openapi document: %w", err)
	}
	registerSwaggerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: string(data)})
	})
	return nil
}
