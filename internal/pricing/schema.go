// internal/pricing/schema.go
package pricing

// documentSchema is the JSON Schema every pricing document must satisfy
// before the cross-product check runs. Structural errors (wrong types,
// missing sections, negative percentages) are caught here with field-level
// messages instead of surfacing as zero-value lookups later.
const documentSchema = `{
  "type": "object",
  "required": ["base", "asset_pct", "gencode_pct", "exclusivity_pct_per_month", "exclusivity_max_months", "rush_pct", "fees", "range_pad"],
  "properties": {
    "base": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "additionalProperties": {
          "type": "object",
          "additionalProperties": {"type": "number", "minimum": 0}
        }
      }
    },
    "asset_pct": {
      "type": "object",
      "additionalProperties": {"type": "number", "minimum": 0}
    },
    "gencode_pct": {
      "type": "object",
      "additionalProperties": {"type": "number", "minimum": 0}
    },
    "exclusivity_pct_per_month": {"type": "number", "minimum": 0},
    "exclusivity_max_months": {"type": "integer", "minimum": 0},
    "rush_pct": {"type": "number", "minimum": 0},
    "fees": {
      "type": "object",
      "required": ["health_premium_flat"],
      "properties": {
        "health_premium_flat": {"type": "integer", "minimum": 0}
      }
    },
    "range_pad": {
      "type": "object",
      "required": ["low", "high"],
      "properties": {
        "low": {"type": "number", "exclusiveMinimum": 0},
        "high": {"type": "number", "exclusiveMinimum": 0}
      }
    }
  }
}`
