package catalog

import "github.com/aretw0/synthaser/pkg/domain"

var defaultFamilies = map[string][]string{
	"KS":  {"PKS_KS", "PKS", "CLF", "KAS_I_II", "CHS_like", "KAS_III"},
	"AT":  {"PKS_AT", "Acyl_transf_1"},
	"ER":  {"PKS_ER", "enoyl_red"},
	"KR":  {"KR", "PKS_KR"},
	"TE":  {"Thioesterase", "Aes"},
	"TR":  {"Thioester-redct", "SDR_e1"},
	"MT":  {"Methyltransf_11", "Methyltransf_12", "Methyltransf_23", "Methyltransf_25", "Methyltransf_31", "AdoMet_MTases"},
	"DH":  {"PKS_DH", "PS-DH"},
	"PT":  {"PT_fungal_PKS"},
	"ACP": {"PKS_PP", "PP-binding", "AcpP"},
	"SAT": {"SAT"},
	"C":   {"Condensation"},
	"A":   {"A_NRPS", "AMP-binding"},
}

// Default returns the classic synthase family table. Thresholds are zero, so
// every specific hit of a listed family is accepted.
func Default() *Catalog {
	var entries []domain.CatalogEntry
	for _, typ := range []string{"KS", "AT", "ER", "KR", "TE", "TR", "MT", "DH", "PT", "ACP", "SAT", "C", "A"} {
		for _, fam := range defaultFamilies[typ] {
			entries = append(entries, domain.CatalogEntry{Family: fam, Type: typ})
		}
	}
	return MustNew(entries...)
}
