package consultor

import (
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, c *Consultor) error
	BuscarPorID(db *gorm.DB, id uint) (*Consultor, error)
	ListarTodos(db *gorm.DB) ([]Consultor, error)
	Atualizar(db *gorm.DB, id uint, novosDados *Consultor) (*Consultor, error)
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *Consultor) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Consultor, error) {
	var c Consultor
	if err := db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// A ordem por ID é a ordem das barras no gráfico de faturamento por consultor
func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Consultor, error) {
	var consultores []Consultor
	err := db.Order("id ASC").Find(&consultores).Error
	return consultores, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, id uint, novosDados *Consultor) (*Consultor, error) {
	var existente Consultor
	if err := db.First(&existente, id).Error; err != nil {
		return nil, err
	}

	existente.Nome = novosDados.Nome
	existente.Telefone = novosDados.Telefone
	existente.Email = novosDados.Email

	if err := db.Save(&existente).Error; err != nil {
		return nil, err
	}
	return &existente, nil
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	res := db.Delete(&Consultor{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
