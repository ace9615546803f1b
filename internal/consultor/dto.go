package consultor

// ConsultorDTO é o payload de criação/atualização de consultor.
type ConsultorDTO struct {
	Nome     string `json:"nome" validate:"required,max=255"`
	Telefone string `json:"telefone" validate:"omitempty,max=20"`
	Email    string `json:"email" validate:"omitempty,email"`
}

func (d ConsultorDTO) ParaModelo() Consultor {
	return Consultor{Nome: d.Nome, Telefone: d.Telefone, Email: d.Email}
}
