package recebimento

// ReagendarPosteriores recalcula a data prevista das parcelas seguintes a base,
// cada uma IntervaloEntreParcelas dias após a data base da anterior.
// posteriores deve estar ordenado por NumeroParcela. Retorna apenas as parcelas alteradas.
func ReagendarPosteriores(base Recebimento, posteriores []Recebimento) []Recebimento {
	var alteradas []Recebimento
	anterior := base.DataBase()
	for _, p := range posteriores {
		if anterior.IsZero() {
			break
		}
		nova := anterior.AddDias(IntervaloEntreParcelas)
		if !p.DataPrevistaRecebimento.Equal(nova) {
			p.DataPrevistaRecebimento = nova
			alteradas = append(alteradas, p)
		}
		anterior = p.DataBase()
	}
	return alteradas
}
