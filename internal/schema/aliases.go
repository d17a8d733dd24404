// =============================================================================
// Fechamento - Column Alias Table
// =============================================================================
//
// The stores export their daily numbers from several legacy systems, so the
// same logical column arrives under many different header spellings, in
// Portuguese and in English. This module owns the table of accepted
// spellings per canonical field and the matching rules:
//   - Matching is case-insensitive and whitespace-trimmed.
//   - Alias lists are ordered; the first alias present in a file's header
//     row wins for its canonical field.
//   - Alias spellings must be disjoint across canonical fields.
//
// =============================================================================

package schema

import (
	"fmt"
	"strings"

	"github.com/vmsantos/fechamento/internal/sales"
)

// AliasTable maps a canonical field name to the ordered list of accepted
// header spellings for that field.
type AliasTable map[string][]string

// Default returns the built-in alias table covering the header spellings
// observed in the stores' exports so far.
func Default() AliasTable {
	return AliasTable{
		sales.FieldDate: {
			"data", "date", "data_venda", "data da venda", "dt", "dt_venda",
		},
		sales.FieldStoreID: {
			"loja_id", "loja", "store_id", "filial", "id_loja", "cod_loja",
			"codigo_loja",
		},
		sales.FieldProductID: {
			"produto_id", "produto", "product_id", "sku", "id_produto",
			"cod_produto", "codigo_produto",
		},
		sales.FieldQuantity: {
			"quantidade", "qtd", "quantity", "qty", "qte", "qtde",
			"quantidade_vendida", "qtd_vendida",
		},
		sales.FieldUnitPrice: {
			"preco_unitario", "preco", "unit_price", "valor_unitario",
			"preco_un", "preco unit", "valor unitario", "vl_unit", "vlunit",
			"preco_uni", "preco_unit", "precounit",
		},
	}
}

// Merge returns a copy of t with the extra spellings appended to each
// field's alias list. Unknown canonical field names and duplicate aliases
// across fields are rejected.
func (t AliasTable) Merge(extra map[string][]string) (AliasTable, error) {
	merged := make(AliasTable, len(t))
	for field, aliases := range t {
		merged[field] = append([]string(nil), aliases...)
	}

	for field, aliases := range extra {
		if _, ok := merged[field]; !ok {
			return nil, fmt.Errorf("unknown canonical field %q in alias table", field)
		}
		for _, alias := range aliases {
			merged[field] = append(merged[field], normalizeHeader(alias))
		}
	}

	if err := merged.validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// validate checks that no alias spelling is claimed by two canonical fields.
func (t AliasTable) validate() error {
	seen := make(map[string]string)
	for field, aliases := range t {
		for _, alias := range aliases {
			key := normalizeHeader(alias)
			if other, dup := seen[key]; dup && other != field {
				return fmt.Errorf("alias %q is listed for both %q and %q", alias, other, field)
			}
			seen[key] = field
		}
	}
	return nil
}

// normalizeHeader folds a header spelling into its lookup form.
func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}
