package forms

import (
	"net/url"

	"github.com/RajevHacker/codespark-invoice-wizard/internal/models"
	"github.com/RajevHacker/codespark-invoice-wizard/validation"
)

type Login struct {
	PartnerName Value `json:"partnerName"`
	Username    Value `json:"username"`
	Password    Value `json:"password"`
}

func (f *Login) readValues(v url.Values) {
	f.PartnerName = get(v, "partnerName")
	f.Username = get(v, "username")
	f.Password = Value(v.Get("password"))
}

func (f Login) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("partnerName", f.PartnerName.String(), v)
	validation.Required("username", f.Username.String(), v)
	validation.Required("password", string(f.Password), v)
	return v
}

// Customer backs both the add and the update customer screens.
type Customer struct {
	Name          Value `json:"name"`
	Address       Value `json:"address"`
	ContactNumber Value `json:"contactNumber"`
	State         Value `json:"state"`
	StateCode     Value `json:"stateCode"`
	GSTNo         Value `json:"gstNo"`
	Email         Value `json:"email"`
}

func (f *Customer) readValues(v url.Values) {
	f.Name = get(v, "name")
	f.Address = get(v, "address")
	f.ContactNumber = get(v, "contactNumber")
	f.State = get(v, "state")
	f.StateCode = get(v, "stateCode")
	f.GSTNo = get(v, "gstNo")
	f.Email = get(v, "email")
}

func (f Customer) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("name", f.Name.String(), v)
	validation.Required("contactNumber", f.ContactNumber.String(), v)
	return v
}

func (f Customer) Model() models.Customer {
	return models.Customer{
		Name:          f.Name.String(),
		Address:       f.Address.String(),
		ContactNumber: f.ContactNumber.String(),
		State:         f.State.String(),
		StateCode:     f.StateCode.String(),
		GSTNo:         f.GSTNo.String(),
		Email:         f.Email.String(),
	}
}

// CustomerFromModel pre-fills the update screen from a looked-up customer.
func CustomerFromModel(c models.Customer) Customer {
	return Customer{
		Name:          Value(c.Name),
		Address:       Value(c.Address),
		ContactNumber: Value(c.ContactNumber),
		State:         Value(c.State),
		StateCode:     Value(c.StateCode),
		GSTNo:         Value(c.GSTNo),
		Email:         Value(c.Email),
	}
}

type Product struct {
	ProductName Value `json:"productName"`
	HSN         Value `json:"hsn"`
}

func (f *Product) readValues(v url.Values) {
	f.ProductName = get(v, "productName")
	f.HSN = get(v, "hsn")
}

func (f Product) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("productName", f.ProductName.String(), v)
	return v
}

func (f Product) Model() models.Product {
	return models.Product{ProductName: f.ProductName.String(), HSN: f.HSN.String()}
}
