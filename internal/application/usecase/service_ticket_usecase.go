package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/relojeria-admin/internal/domain/entity"
)

// TicketPDFGenerator puerto de salida para el comprobante de servicio
// (implementado por infrastructure/pdf.TicketGenerator).
type TicketPDFGenerator interface {
	GenerateServiceTicket(ctx context.Context, sr entity.ServiceRequest) ([]byte, error)
}

// ServiceTicketUseCase genera el comprobante PDF de una orden de servicio.
type ServiceTicketUseCase struct {
	requests  *ServiceRequestUseCase
	generator TicketPDFGenerator
}

// NewServiceTicketUseCase construye el caso de uso.
func NewServiceTicketUseCase(requests *ServiceRequestUseCase, generator TicketPDFGenerator) *ServiceTicketUseCase {
	return &ServiceTicketUseCase{requests: requests, generator: generator}
}

// Download obtiene la orden (con fallback) y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la orden no existe.
func (uc *ServiceTicketUseCase) Download(ctx context.Context, id string) (pdfBytes []byte, filename string, err error) {
	sr, err := uc.requests.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateServiceTicket(ctx, sr)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante de servicio: %w", err)
	}
	return pdfBytes, fmt.Sprintf("orden-servicio-%s.pdf", sr.ID), nil
}
