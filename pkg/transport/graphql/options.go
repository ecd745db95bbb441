package graphql

// BuilderOption configures the Builder.
type BuilderOption func(*Builder)

// WithHeaders merges headers into the request; later options win.
func WithHeaders(headers map[string]string) BuilderOption {
	return func(b *Builder) {
		b.Headers = merge(b.Headers, headers)
	}
}

// WithHeader is WithHeaders for a single header.
func WithHeader(key, value string) BuilderOption {
	return WithHeaders(map[string]string{key: value})
}

// WithVariables merges operation variables. Values must be JSON encodable.
func WithVariables(variables map[string]interface{}) BuilderOption {
	return func(b *Builder) {
		b.Variables = merge(b.Variables, variables)
	}
}

// WithVariable is WithVariables for a single variable.
func WithVariable(key string, value interface{}) BuilderOption {
	return WithVariables(map[string]interface{}{key: value})
}

func merge[V any](dst, src map[string]V) map[string]V {
	if dst == nil {
		dst = make(map[string]V, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// ApplyOptions applies BuilderOption functions in order.
func (b *Builder) ApplyOptions(opts ...BuilderOption) {
	for _, opt := range opts {
		opt(b)
	}
}
