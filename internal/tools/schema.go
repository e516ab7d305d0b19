package tools

// Schema is a JSON Schema document describing an input or output record
type Schema map[string]any

func objectSchema(title string, properties map[string]any, required ...string) Schema {
	s := Schema{
		"title":      title,
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func enumProp(description, def string, values ...string) map[string]any {
	return map[string]any{
		"type":        "string",
		"enum":        values,
		"default":     def,
		"description": description,
	}
}

func intProp(description string) map[string]any {
	return map[string]any{"type": "integer", "description": description}
}

func boolProp(description string) map[string]any {
	return map[string]any{"type": "boolean", "description": description}
}

func objectProp(description string) map[string]any {
	return map[string]any{"type": "object", "description": description}
}

func nullable(prop map[string]any) map[string]any {
	prop["type"] = []string{prop["type"].(string), "null"}
	return prop
}
