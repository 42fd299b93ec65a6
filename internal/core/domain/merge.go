// Package domain defines the core domain model for tokmint.
package domain

// Merge returns the effective configuration of child nested inside parent.
//
// Every field the child sets wins; unset fields inherit from the parent.
// Token definitions are parent's followed by child's, each copied with a
// fresh ID so no cache state is inherited. Copying stops at MaxTokens;
// dropped reports how many definitions did not fit.
//
// Neither input is modified. A nil input is treated as empty.
func Merge(parent, child *Config) (merged *Config, dropped int) {
	if parent == nil {
		parent = &Config{}
	}
	if child == nil {
		child = &Config{}
	}

	merged = &Config{
		Defaults: Defaults{
			Length:           pick(child.Defaults.Length, parent.Defaults.Length),
			Format:           pick(child.Defaults.Format, parent.Defaults.Format),
			IncludeTimestamp: pick(child.Defaults.IncludeTimestamp, parent.Defaults.IncludeTimestamp),
			Prefix:           pick(child.Defaults.Prefix, parent.Defaults.Prefix),
			Suffix:           pick(child.Defaults.Suffix, parent.Defaults.Suffix),
			TTL:              pick(child.Defaults.TTL, parent.Defaults.TTL),
		},
		URLPattern:     parent.URLPattern,
		Alphabet:       pick(child.Alphabet, parent.Alphabet),
		Grouping:       pick(child.Grouping, parent.Grouping),
		Expiry:         pick(child.Expiry, parent.Expiry),
		EncodeMetadata: pick(child.EncodeMetadata, parent.EncodeMetadata),
		SigningKey:     pick(child.SigningKey, parent.SigningKey),
	}
	if child.URLPattern != nil {
		merged.URLPattern = child.URLPattern
	}

	total := len(parent.Tokens) + len(child.Tokens)
	merged.Tokens = make([]TokenDefinition, 0, min(total, MaxTokens))

	for _, list := range [][]TokenDefinition{parent.Tokens, child.Tokens} {
		for _, def := range list {
			if len(merged.Tokens) >= MaxTokens {
				break
			}
			def.ID = NewDefinitionID()
			merged.Tokens = append(merged.Tokens, def)
		}
	}

	return merged, total - len(merged.Tokens)
}
