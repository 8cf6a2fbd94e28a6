package whatsapp

// inboundObserverJS is injected into every WhatsApp Web document. It records
// incoming message rows as they are rendered into window.__waInbound, which
// Client.Poll drains.
const inboundObserverJS = `(() => {
	if (window.__waObserver) return;
	window.__waInbound = window.__waInbound || [];
	const seen = new Set();
	const capture = (el) => {
		const id = el.getAttribute('data-id');
		if (!id || !id.startsWith('false_') || seen.has(id)) return;
		seen.add(id);
		const text = el.querySelector('.selectable-text');
		window.__waInbound.push({ id: id, body: text ? text.innerText : '', at: Date.now() });
	};
	const start = () => {
		window.__waObserver = new MutationObserver((mutations) => {
			for (const m of mutations) {
				for (const node of m.addedNodes) {
					if (!(node instanceof HTMLElement)) continue;
					if (node.matches('[data-id]')) capture(node);
					node.querySelectorAll('[data-id]').forEach(capture);
				}
			}
		});
		window.__waObserver.observe(document.body, { childList: true, subtree: true });
	};
	if (document.body) start();
	else document.addEventListener('DOMContentLoaded', start);
})()`
